package agro

import (
	"errors"
	"testing"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %T", err)
	assert.Equal(t, code, domainErr.Code)
}

func TestNewProducer(t *testing.T) {
	t.Run("creates producer with normalized tax ID", func(t *testing.T) {
		p, err := NewProducer("123.456.789-09", "  João Silva ")
		require.NoError(t, err)
		assert.Equal(t, "12345678909", p.TaxID)
		assert.Equal(t, "João Silva", p.Name)
		assert.Equal(t, TaxIDKindCPF, p.TaxIDKind())
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", p.ID.String())

		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProducerRegistered, events[0].EventType())
		assert.Equal(t, p.ID, events[0].AggregateID())
	})

	t.Run("accepts CNPJ", func(t *testing.T) {
		p, err := NewProducer("11.222.333/0001-81", "Fazendas Reunidas Ltda")
		require.NoError(t, err)
		assert.Equal(t, TaxIDKindCNPJ, p.TaxIDKind())
	})

	t.Run("rejects invalid document", func(t *testing.T) {
		_, err := NewProducer("12345678901", "João Silva")
		assertDomainCode(t, err, shared.CodeInvalidDocument)
		assert.ErrorIs(t, err, shared.ErrInvalidDocument)
	})

	t.Run("rejects missing tax ID", func(t *testing.T) {
		_, err := NewProducer("", "João Silva")
		assertDomainCode(t, err, shared.CodeValidationFailed)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		_, err := NewProducer("12345678909", "   ")
		assertDomainCode(t, err, shared.CodeValidationFailed)
	})
}

func TestProducer_Update(t *testing.T) {
	t.Run("updates only supplied fields", func(t *testing.T) {
		p, err := NewProducer("12345678909", "João Silva")
		require.NoError(t, err)
		p.ClearDomainEvents()

		require.NoError(t, p.Update(nil, strPtr("João da Silva")))
		assert.Equal(t, "João da Silva", p.Name)
		assert.Equal(t, "12345678909", p.TaxID)
		require.Len(t, p.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeProducerUpdated, p.GetDomainEvents()[0].EventType())
	})

	t.Run("revalidates tax ID", func(t *testing.T) {
		p, err := NewProducer("12345678909", "João Silva")
		require.NoError(t, err)

		err = p.Update(strPtr("12345678901"), strPtr("Other"))
		assertDomainCode(t, err, shared.CodeInvalidDocument)
		assert.Equal(t, "12345678909", p.TaxID)
		assert.Equal(t, "João Silva", p.Name, "failed update must not change the record")
	})

	t.Run("replaces tax ID", func(t *testing.T) {
		p, err := NewProducer("12345678909", "João Silva")
		require.NoError(t, err)

		require.NoError(t, p.Update(strPtr("076.865.260-03"), nil))
		assert.Equal(t, "07686526003", p.TaxID)
	})
}
