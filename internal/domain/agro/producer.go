package agro

import "github.com/agro/backend/internal/domain/shared"

const maxNameLength = 200

// Producer is a rural producer (farmer) identified by a CPF or CNPJ.
// It is the aggregate root that owns properties.
type Producer struct {
	shared.BaseAggregateRoot
	TaxID string // digits only
	Name  string
}

// NewProducer creates a producer after validating the name and tax ID.
// The tax ID is stored in its digit-only form.
func NewProducer(taxID, name string) (*Producer, error) {
	name = normalizeText(name)
	if err := validateProducerName(name); err != nil {
		return nil, err
	}
	normalized, err := validateTaxID(taxID)
	if err != nil {
		return nil, err
	}

	producer := &Producer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TaxID:             normalized,
		Name:              name,
	}
	producer.AddDomainEvent(NewProducerRegisteredEvent(producer))

	return producer, nil
}

// Update applies a partial update. Nil fields are left unchanged.
func (p *Producer) Update(taxID, name *string) error {
	newName := p.Name
	if name != nil {
		newName = normalizeText(*name)
		if err := validateProducerName(newName); err != nil {
			return err
		}
	}
	newTaxID := p.TaxID
	if taxID != nil {
		normalized, err := validateTaxID(*taxID)
		if err != nil {
			return err
		}
		newTaxID = normalized
	}

	p.Name = newName
	p.TaxID = newTaxID
	p.Touch()

	p.AddDomainEvent(NewProducerUpdatedEvent(p))

	return nil
}

// MarkDeleted records the deletion event; the repository removes the row
func (p *Producer) MarkDeleted() {
	p.AddDomainEvent(NewProducerDeletedEvent(p))
}

// TaxIDKind reports whether the producer is a person (CPF) or a company (CNPJ)
func (p *Producer) TaxIDKind() TaxIDKind {
	return DetectTaxIDKind(p.TaxID)
}

func validateProducerName(name string) error {
	if name == "" {
		return shared.NewDomainError(shared.CodeValidationFailed, "Producer name is required")
	}
	if len([]rune(name)) > maxNameLength {
		return shared.NewDomainError(shared.CodeValidationFailed, "Producer name cannot exceed 200 characters")
	}
	return nil
}

func validateTaxID(taxID string) (string, error) {
	normalized := NormalizeTaxID(taxID)
	if taxID == "" {
		return "", shared.NewDomainError(shared.CodeValidationFailed, "CPF or CNPJ is required")
	}
	if !IsValidTaxID(normalized) {
		return "", shared.ErrInvalidDocument
	}
	return normalized, nil
}
