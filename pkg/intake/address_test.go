package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddressParts(t *testing.T) {
	tests := []struct {
		name    string
		address string
		street  string
		city    string
		state   string
		zip     string
	}{
		{
			name:    "comma separated",
			address: "123 Main St, Albany, NY 12207",
			street:  "123 Main St",
			city:    "Albany",
			state:   "NY",
			zip:     "12207",
		},
		{
			name:    "line breaks between parts",
			address: "123 Main St\nAlbany\nNY 12207",
			street:  "123 Main St",
			city:    "Albany",
			state:   "NY",
			zip:     "12207",
		},
		{
			name:    "windows line endings",
			address: "45 Dairy Rd\r\nBatavia\r\nNY 14020",
			street:  "45 Dairy Rd",
			city:    "Batavia",
			state:   "NY",
			zip:     "14020",
		},
		{
			name:    "missing zip",
			address: "123 Main St, Albany, NY",
			street:  "123 Main St",
			city:    "Albany",
			state:   "NY",
		},
		{
			name:    "street only",
			address: "123 Main St",
			street:  "123 Main St",
		},
		{
			name:    "extra whitespace and empty parts",
			address: " 123 Main St ,, Albany ,  NY   12207 ",
			street:  "123 Main St",
			city:    "Albany",
			state:   "NY",
			zip:     "12207",
		},
		{
			name:    "empty",
			address: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			street, city, state, zip := parseAddressParts(tt.address)
			assert.Equal(t, tt.street, street)
			assert.Equal(t, tt.city, city)
			assert.Equal(t, tt.state, state)
			assert.Equal(t, tt.zip, zip)
		})
	}
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("a", "b"))
	assert.Equal(t, "b", firstNonEmpty("", "b"))
	assert.Equal(t, "b", firstNonEmpty("  ", "b"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
