package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeVIN(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "1hgcm82633a004352", "1HGCM82633A004352"},
		{"whitespace", " 1HGCM82633A004352 ", "1HGCM82633A004352"},
		{"separators", "1HG-CM8 2633.A004352", "1HGCM82633A004352"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeVIN(tc.in))
		})
	}
}

func TestValidVIN(t *testing.T) {
	assert.True(t, ValidVIN("1HGCM82633A004352"))
	assert.False(t, ValidVIN("1HGCM82633A00435"))
	assert.False(t, ValidVIN("1HGCM82633A0043521"))
	assert.False(t, ValidVIN("1HGCM82633A00435!"))
	assert.False(t, ValidVIN(""))
}

func TestDeriveWarrantyID(t *testing.T) {
	id := uuid.MustParse("6f9619ff-8b86-4d01-b42d-00c04fc964ff")

	first := DeriveWarrantyID(id)
	second := DeriveWarrantyID(id)

	assert.Equal(t, first, second)
	assert.Regexp(t, `^W-[A-Z2-7]{8}$`, first)
	assert.NotEqual(t, first, DeriveWarrantyID(uuid.New()))
}
