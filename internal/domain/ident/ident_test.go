package ident_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recetario-api/internal/domain"
	"github.com/jhoicas/recetario-api/internal/domain/ident"
)

func TestEncode_FormaCanonicaIdaYVuelta(t *testing.T) {
	raw := "3f2b8c1e-9d4a-4e6b-8f21-0c5d7a9e1b23"
	id, err := ident.Encode(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, ident.Decode(id))
}

func TestEncode_MayusculasSeNormalizan(t *testing.T) {
	id, err := ident.Encode("3F2B8C1E-9D4A-4E6B-8F21-0C5D7A9E1B23")
	require.NoError(t, err)
	assert.Equal(t, "3f2b8c1e-9d4a-4e6b-8f21-0c5d7a9e1b23", ident.Decode(id))
}

func TestEncode_RechazaFormasInvalidas(t *testing.T) {
	cases := map[string]string{
		"vacío":           "",
		"corto":           "abc",
		"sin guiones":     "3f2b8c1e9d4a4e6b8f210c5d7a9e1b23",
		"con llaves":      "{3f2b8c1e-9d4a-4e6b-8f21-0c5d7a9e1b23}",
		"urn":             "urn:uuid:3f2b8c1e-9d4a-4e6b-8f21-0c5d7a9e1b23",
		"no hexadecimal":  "zzzzzzzz-9d4a-4e6b-8f21-0c5d7a9e1b23",
		"uuid nulo":       uuid.Nil.String(),
		"centinela null":  "null",
		"demasiado largo": strings.Repeat("a", 37),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ident.Encode(raw)
			assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
		})
	}
}

func TestEncodeOptional_AusenciaYNull(t *testing.T) {
	for _, raw := range []*string{nil, ptr(""), ptr("null"), ptr("  null ")} {
		id, err := ident.EncodeOptional(raw)
		require.NoError(t, err)
		assert.Nil(t, id)
	}
}

func TestEncodeOptional_ValorYError(t *testing.T) {
	id, err := ident.EncodeOptional(ptr("3f2b8c1e-9d4a-4e6b-8f21-0c5d7a9e1b23"))
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "3f2b8c1e-9d4a-4e6b-8f21-0c5d7a9e1b23", *ident.DecodeOptional(id))

	_, err = ident.EncodeOptional(ptr("no-es-un-id"))
	assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
}

func TestNew_GeneraIDsValidosYDistintos(t *testing.T) {
	a, b := ident.New(), ident.New()
	assert.NotEqual(t, a, b)
	_, err := ident.Encode(ident.Decode(a))
	assert.NoError(t, err)
}

func ptr(s string) *string { return &s }
