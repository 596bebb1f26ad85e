package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderDateRoundTrip(t *testing.T) {
	placed := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	o := Order{Id: 1, UserId: 2, Date: placed, Status: Completed}

	bs, err := json.Marshal(o)
	require.NoError(t, err)

	var back Order
	require.NoError(t, json.Unmarshal(bs, &back))
	assert.True(t, placed.Equal(back.Date))
	assert.Equal(t, Completed, back.Status)
}

func TestOrderMalformedDate(t *testing.T) {
	// a broken date must not fail the load, only zero the date
	raw := `{"id":7,"userId":1,"date":"not-a-date","status":"Pending","total":"10","items":[]}`

	var o Order
	require.NoError(t, json.Unmarshal([]byte(raw), &o))
	assert.Equal(t, 7, o.Id)
	assert.True(t, o.Date.IsZero())
}

func TestOrderDateOnlyFormat(t *testing.T) {
	raw := `{"id":1,"userId":1,"date":"2025-01-15","status":"Completed","total":"100","items":[]}`

	var o Order
	require.NoError(t, json.Unmarshal([]byte(raw), &o))
	assert.Equal(t, 2025, o.Date.Year())
	assert.Equal(t, time.January, o.Date.Month())
	assert.Equal(t, 15, o.Date.Day())
}
