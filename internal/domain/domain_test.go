package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("EXPENSE")
	require.NoError(t, err)
	assert.Equal(t, Expense, d)

	_, err = ParseDirection("expense")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestParseFrequency(t *testing.T) {
	f, err := ParseFrequency("MONTHLY")
	require.NoError(t, err)
	assert.Equal(t, Monthly, f)

	_, err = ParseFrequency("")
	assert.ErrorIs(t, err, ErrInvalidFrequency)
}

func TestParseDate_RoundTrip(t *testing.T) {
	d, err := ParseDate("2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.January, 31), d)
	assert.Equal(t, "2025-01-31", FormatDate(d))

	_, err = ParseDate("31/01/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func validTemplate() Template {
	return Template{
		ID:            "t-1",
		OwnerID:       "u-1",
		Direction:     Expense,
		AmountCents:   120000,
		Description:   "Aluguel",
		CategoryID:    "c-1",
		AnchorDate:    NewDate(2025, time.January, 5),
		Frequency:     Monthly,
		LastProcessed: NewDate(2025, time.January, 5),
		Active:        true,
	}
}

func TestTemplateValidate(t *testing.T) {
	assert.NoError(t, validTemplate().Validate())

	tpl := validTemplate()
	tpl.OwnerID = ""
	assert.ErrorIs(t, tpl.Validate(), ErrMissingOwner)

	tpl = validTemplate()
	tpl.AmountCents = 0
	assert.ErrorIs(t, tpl.Validate(), ErrNonPositiveAmount)

	tpl = validTemplate()
	tpl.Frequency = ""
	assert.ErrorIs(t, tpl.Validate(), ErrInvalidFrequency)

	tpl = validTemplate()
	end := NewDate(2024, time.December, 31)
	tpl.EndDate = &end
	assert.ErrorIs(t, tpl.Validate(), ErrEndBeforeAnchor)
}

func TestTemplateEnded(t *testing.T) {
	tpl := validTemplate()
	assert.False(t, tpl.Ended(NewDate(2030, time.January, 1)))

	end := NewDate(2025, time.June, 30)
	tpl.EndDate = &end
	assert.False(t, tpl.Ended(NewDate(2025, time.June, 30)))
	assert.True(t, tpl.Ended(NewDate(2025, time.July, 1)))
}

func TestCategoryValidateKeywords(t *testing.T) {
	c := Category{Keywords: []string{"uber", "99"}}
	assert.NoError(t, c.ValidateKeywords())

	many := make([]string, MaxKeywords+1)
	for i := range many {
		many[i] = "k"
	}
	c = Category{Keywords: many}
	assert.ErrorIs(t, c.ValidateKeywords(), ErrTooManyKeywords)

	long := make([]byte, MaxKeywordLength+1)
	for i := range long {
		long[i] = 'a'
	}
	c = Category{Keywords: []string{string(long)}}
	assert.ErrorIs(t, c.ValidateKeywords(), ErrKeywordTooLong)
}
