package mapping

import (
	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	"github.com/Finger-Lab/olgacolor-back/internal/models"
)

// ToModelRateRecord converts a domain RateRecord to a model RateRecord.
func ToModelRateRecord(d domain.RateRecord) models.RateRecord {
	return models.RateRecord{
		RateID:       d.RateID,
		CurrencyType: string(d.Instrument),
		Rate:         d.Rate,
		RateDate:     d.RateDate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRateRecord converts a model RateRecord to a domain RateRecord.
func ToDomainRateRecord(m models.RateRecord) domain.RateRecord {
	return domain.RateRecord{
		RateID:      m.RateID,
		Instrument:  domain.Instrument(m.CurrencyType),
		Rate:        m.Rate,
		RateDate:    m.RateDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRateRecordSlice converts a slice of model records to domain records.
func ToDomainRateRecordSlice(ms []models.RateRecord) []domain.RateRecord {
	ds := make([]domain.RateRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRateRecord(m)
	}
	return ds
}
