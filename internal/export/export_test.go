package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func sampleBatch() *types.Batch {
	full := &types.Proposition{
		ID:             2080512,
		Name:           "PL 1/2015",
		Number:         1,
		Year:           2015,
		SubmissionDate: time.Date(2015, 2, 2, 0, 0, 0, 0, time.UTC),
		Summary:        "Altera a legislação de trânsito.",
		AuthorCount:    2,
		Attachments: []types.AttachmentRef{
			{Name: "PL 7/2015", Code: "900000"},
		},
	}
	full.SetType(types.PropositionType{ID: 139, Sigla: "PL", Name: "Projeto de Lei"})
	full.SetAuthor(types.Author{Name: "Fulano", PartySigla: "PT", State: "SP"})
	full.SetStatus(types.Status{
		ID:          924,
		Description: "Aguardando Parecer",
		Agency:      types.StatusAgency{ID: 2001, Sigla: "CVT"},
		Principal:   &types.PrincipalRef{ID: 2080000, Name: "PL 9/2014"},
	})
	full.SetKeywords([]string{"trânsito", "multa"})
	full.SetFullText([]string{"art", "1", "altera"})

	bare := &types.Proposition{
		ID:     2080513,
		Name:   "PL 2/2015",
		Number: 2,
		Year:   2015,
	}

	return &types.Batch{
		Key:          types.NewBatchKey("PL", 2015, true),
		Propositions: []*types.Proposition{full, bare},
	}
}

func column(t *testing.T, records [][]string, name string) int {
	t.Helper()
	for i, h := range records[0] {
		if h == name {
			return i
		}
	}
	t.Fatalf("column %q not found in %v", name, records[0])
	return -1
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleBatch(), false))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, "2080512", records[1][column(t, records, "id")])
	require.Equal(t, "PL", records[1][column(t, records, "tipo")])
	require.Equal(t, "2015-02-02", records[1][column(t, records, "data_apresentacao")])
	require.Equal(t, "trânsito, multa", records[1][column(t, records, "indexacao")])
	require.Equal(t, "2080000", records[1][column(t, records, "principal_id")])
	require.Equal(t, "CVT", records[1][column(t, records, "situacao_orgao")])
	require.Equal(t, "1", records[1][column(t, records, "qtd_apensados")])
	require.Equal(t, "3", records[1][column(t, records, "qtd_tokens_inteiro_teor")])
	require.Equal(t, "true", records[1][column(t, records, "tem_inteiro_teor")])

	require.Equal(t, "", records[2][column(t, records, "tipo")])
	require.Equal(t, "", records[2][column(t, records, "data_apresentacao")])
	require.Equal(t, "false", records[2][column(t, records, "tem_inteiro_teor")])
}

func TestWriteCSVWindows1252(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleBatch(), true))

	require.False(t, bytes.Contains(buf.Bytes(), []byte("trânsito")))
	require.True(t, bytes.Contains(buf.Bytes(), []byte("tr\xe2nsito")))

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(buf.Bytes())
	require.NoError(t, err)
	require.Contains(t, string(decoded), "Altera a legislação de trânsito.")
}

func TestWriteCSVEmptyBatch(t *testing.T) {
	batch := &types.Batch{Key: types.NewBatchKey("PEC", 2015, false)}

	err := WriteCSV(&bytes.Buffer{}, batch, false)
	require.ErrorIs(t, err, ErrEmptyBatch)
}
