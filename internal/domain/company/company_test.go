package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompany(t *testing.T) {
	c, err := NewCompany(" 123 456 789 ", "  Silk Road LLC ")
	require.NoError(t, err)
	assert.Equal(t, "123456789", c.INN())
	assert.Equal(t, "Silk Road LLC", c.Name())

	_, err = NewCompany("12ab", "x")
	assert.Error(t, err)

	_, err = NewCompany("123456789", " ")
	assert.Error(t, err)
}

func TestCompany_Rename(t *testing.T) {
	c, err := NewCompany("123456789", "Old")
	require.NoError(t, err)

	assert.False(t, c.Rename(""))
	assert.False(t, c.Rename("Old"))
	assert.True(t, c.Rename("New"))
	assert.Equal(t, "New", c.Name())
}

func TestNormalizePersonName(t *testing.T) {
	assert.Equal(t, "Ivan", NormalizePersonName("  ivan "))
	assert.Equal(t, "Анна Мария", NormalizePersonName("АННА   мария"))
	assert.Equal(t, "", NormalizePersonName("   "))
}

func TestEmployee_FillBlanksKeepsExistingData(t *testing.T) {
	e, err := ReconstructEmployee(1, 2, "Ivan", "Petrov", "", "+998901112233", "")
	require.NoError(t, err)

	changed := e.FillBlanks("sergeevich", "+000", "IVAN@EXAMPLE.COM")

	assert.True(t, changed)
	assert.Equal(t, "Sergeevich", e.MiddleName())
	assert.Equal(t, "+998901112233", e.Phone())
	assert.Equal(t, "ivan@example.com", e.Email())
	assert.False(t, e.FillBlanks("x", "y", "z"))
}
