package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_AcceptsNumbersAndStrings(t *testing.T) {
	var body struct {
		A Number  `json:"a"`
		B Number  `json:"b"`
		C Number  `json:"c"`
		D *Number `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1200.5, "b": "3", "c": ""}`), &body))

	assert.Equal(t, 1200.5, body.A.Float())
	assert.Equal(t, 3, body.B.Int())
	assert.Equal(t, 0.0, body.C.Float())
	assert.Nil(t, body.D)
}

func TestNumber_RejectsGarbage(t *testing.T) {
	var body struct {
		A Number `json:"a"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"a": "twelve"}`), &body))
}

func TestNumber_RejectsNonFinite(t *testing.T) {
	for _, in := range []string{
		`{"a": "NaN"}`,
		`{"a": "nan"}`,
		`{"a": "Inf"}`,
		`{"a": "-Infinity"}`,
		`{"a": "1e400"}`,
	} {
		var body struct {
			A Number `json:"a"`
		}
		assert.Error(t, json.Unmarshal([]byte(in), &body), in)
	}

	var req CreatePropertyRequest
	assert.Error(t, json.Unmarshal([]byte(`{"title":"a","price":"NaN"}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"title":"a","size":"Inf"}`), &req))
}

func TestNumber_KeepsLargeFiniteValues(t *testing.T) {
	var body struct {
		A Number `json:"a"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1e308}`), &body))
	assert.Equal(t, 1e308, body.A.Float())
}

func TestOptionalID(t *testing.T) {
	var req UpdateVisitRequest

	require.NoError(t, json.Unmarshal([]byte(`{"status": "assigned"}`), &req))
	assert.False(t, req.AssignedAgencyID.Set)

	req = UpdateVisitRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"assignedAgencyId": null}`), &req))
	assert.True(t, req.AssignedAgencyID.Set)
	assert.Nil(t, req.AssignedAgencyID.Value)

	req = UpdateVisitRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"assignedAgencyId": "7"}`), &req))
	require.NotNil(t, req.AssignedAgencyID.Value)
	assert.Equal(t, uint(7), *req.AssignedAgencyID.Value)

	req = UpdateVisitRequest{}
	assert.Error(t, json.Unmarshal([]byte(`{"assignedAgencyId": -1}`), &req))
}

func TestNewPageMeta(t *testing.T) {
	meta := NewPageMeta(13, 2, 6)
	assert.Equal(t, 3, meta.PageCount)
	assert.True(t, meta.HasPrev)
	assert.True(t, meta.HasNext)

	meta = NewPageMeta(13, 3, 6)
	assert.False(t, meta.HasNext)

	meta = NewPageMeta(12, 1, 6)
	assert.Equal(t, 2, meta.PageCount)
	assert.False(t, meta.HasPrev)
	assert.True(t, meta.HasNext)

	meta = NewPageMeta(0, 1, 6)
	assert.Equal(t, 0, meta.PageCount)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}
