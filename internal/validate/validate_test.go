package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"0712345678", true},
		{"0778888888", true},
		{"0612345678", false}, // wrong prefix
		{"071234567", false},  // too short
		{"07123456789", false},
		{"07a2345678", false},
		{"", false},
		{" 0712345678", false},
	}
	for _, tt := range tests {
		err := Phone(tt.in)
		if tt.ok {
			assert.NoError(t, err, tt.in)
		} else {
			assert.ErrorIs(t, err, ErrPhoneFormat, tt.in)
		}
	}
}

func TestNIC(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"123456789V", true},
		{"123456789v", true},
		{"123456789X", true},
		{"123456789x", true},
		{"199912345678", true},
		{"12345678V", false},   // 8 digits
		{"1234567890V", false}, // 10 digits + letter
		{"123456789A", false},  // wrong letter
		{"19991234567", false}, // 11 digits
		{"1999123456789", false},
		{"", false},
	}
	for _, tt := range tests {
		err := NIC(tt.in)
		if tt.ok {
			assert.NoError(t, err, tt.in)
		} else {
			assert.ErrorIs(t, err, ErrNICFormat, tt.in)
		}
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"a@b.com", true},
		{"first.last@sub.domain.lk", true},
		{"no-at-sign", false},
		{"two@@b.com", false},
		{"spaces in@b.com", false},
		{"a@b", false}, // no tld
		{"", false},
	}
	for _, tt := range tests {
		err := Email(tt.in)
		if tt.ok {
			assert.NoError(t, err, tt.in)
		} else {
			assert.ErrorIs(t, err, ErrEmailFormat, tt.in)
		}
	}
}

func TestStructMapsTagsToMessages(t *testing.T) {
	type form struct {
		Name  string `validate:"required"`
		Phone string `validate:"required,lkphone"`
		Email string `validate:"required,emailshape"`
		NIC   string `validate:"required,nic"`
		Qty   int    `validate:"required,min=1"`
	}

	ok := form{Name: "A B", Phone: "0712345678", Email: "a@b.com", NIC: "123456789V", Qty: 1}
	assert.NoError(t, Struct(ok))

	bad := ok
	bad.Phone = "123"
	assert.ErrorIs(t, Struct(bad), ErrPhoneFormat)

	bad = ok
	bad.NIC = "nope"
	assert.ErrorIs(t, Struct(bad), ErrNICFormat)

	bad = ok
	bad.Email = "not-an-email"
	assert.ErrorIs(t, Struct(bad), ErrEmailFormat)

	bad = ok
	bad.Name = ""
	assert.EqualError(t, Struct(bad), "Name is required")
}
