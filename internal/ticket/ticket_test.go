package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue(t *testing.T) {
	now := time.Date(2026, 10, 16, 8, 0, 0, 123456789, time.UTC)
	id := Issue("b_3f9c2a71d04e", now)

	assert.Equal(t, "tk_b_3f9c2a71d04e", id.TicketID)
	assert.Equal(t, "IHT-B_3F9C2A71D04E-2026", id.TicketNumber)
	assert.Equal(t, now.Truncate(time.Millisecond), id.IssuedAt)
}

func TestNumberForWithoutBookingPrefix(t *testing.T) {
	assert.Equal(t, "IHT-SEED_7-2025", NumberFor("seed_7", 2025))
}

func TestChecksumSigner(t *testing.T) {
	s := ChecksumSigner{}
	assert.Equal(t, "00000", s.Sign(""))
	assert.Equal(t, "00590", s.Sign("abc"))
	assert.Equal(t, "09923", s.Sign("tk_b_1|b_1|u_rider_1|u_driver_1|2026-10-16T08:00:00.000Z"))
	assert.True(t, s.Verify("abc", "00590"))
	assert.False(t, s.Verify("abc", "590"))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := Claims{
		TicketID:    "tk_b_1",
		BookingID:   "b_1",
		PassengerID: "u_rider_1",
		DriverID:    "u_driver_1",
		IssuedAt:    FormatIssuedAt(time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)),
	}
	payload := Encode(c, ChecksumSigner{})
	assert.Equal(t, "IHTQR|tk_b_1|b_1|u_rider_1|u_driver_1|2026-10-16T08:00:00.000Z|09923", payload)

	got, sig, ok := Decode(payload)
	require.True(t, ok)
	assert.Equal(t, c, got)
	assert.Equal(t, "09923", sig)

	_, sig, ok = Decode(payload + "\n")
	require.True(t, ok)
	assert.False(t, ChecksumSigner{}.Verify(c.Message(), sig))
}

func TestDecodeRejectsMalformed(t *testing.T) {
	for _, payload := range []string{
		"",
		"IHTQR|a|b|c|d|e",
		"IHTQR|a|b|c|d|e|f|g",
		"XXXQR|a|b|c|d|e|f",
		"ihtqr|a|b|c|d|e|f",
		" IHTQR|a|b|c|d|e|f",
	} {
		_, _, ok := Decode(payload)
		assert.False(t, ok, payload)
	}
}

func TestBlake2bSigner(t *testing.T) {
	s, err := NewBlake2bSigner([]byte("secret-key"))
	require.NoError(t, err)

	sig := s.Sign("hello")
	assert.Len(t, sig, 32)
	assert.True(t, s.Verify("hello", sig))
	assert.False(t, s.Verify("hello!", sig))

	other, err := NewBlake2bSigner([]byte("other-key"))
	require.NoError(t, err)
	assert.False(t, other.Verify("hello", sig))

	_, err = NewBlake2bSigner(nil)
	assert.Error(t, err)
	_, err = NewBlake2bSigner([]byte(strings.Repeat("k", 65)))
	assert.Error(t, err)
}

func TestNewSigner(t *testing.T) {
	s, err := NewSigner("", nil)
	require.NoError(t, err)
	assert.IsType(t, ChecksumSigner{}, s)

	s, err = NewSigner("blake2b", []byte("k"))
	require.NoError(t, err)
	assert.IsType(t, &Blake2bSigner{}, s)

	_, err = NewSigner("rsa", nil)
	assert.Error(t, err)
}
