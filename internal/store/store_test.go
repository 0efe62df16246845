package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmakit/interaction-checker/internal/common"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drugs.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const fixtureCSV = `drug_name,enzymes,transporters,fe,inhibitor,delta_auc_pct
Aspirin,CYP2C9 | CYP3A4,,0.9,,
warfarin,CYP2C9,P-gp,,amiodarone,210
Digoxin,,P-gp | OATP,,,
empty drug,,,,,
`

func TestLoadAndGet(t *testing.T) {
	path := writeFixture(t, fixtureCSV)
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, path, s.Path())

	info := s.Get("  ASPIRIN ")
	require.True(t, info.Found)
	require.NotNil(t, info.Enzymes)
	assert.Equal(t, "CYP2C9 | CYP3A4", *info.Enzymes)
	assert.Nil(t, info.Transporters)
	assert.Equal(t, map[string]string{"fe": "0.9"}, info.Attributes)
}

func TestGetNotFoundIsMarkerNotError(t *testing.T) {
	s, err := Load(writeFixture(t, fixtureCSV))
	require.NoError(t, err)

	info := s.Get("ibuprofen")
	assert.False(t, info.Found)
	assert.Equal(t, "ibuprofen", info.Name)
	assert.Nil(t, info.Enzymes)
}

func TestGetEmptyButFoundDistinctFromMissing(t *testing.T) {
	s, err := Load(writeFixture(t, fixtureCSV))
	require.NoError(t, err)

	info := s.Get("empty drug")
	assert.True(t, info.Found)
	assert.Nil(t, info.Enzymes)
	assert.Nil(t, info.Transporters)
	assert.Empty(t, info.Attributes)
}

func TestLoadMissingFileIsConfigError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFIG_ERROR", appErr.Code)
}

func TestLoadMissingNameColumnIsConfigError(t *testing.T) {
	_, err := Load(writeFixture(t, "a,b\n1,2\n"))
	require.Error(t, err)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFIG_ERROR", appErr.Code)
}

func TestAttributeColumns(t *testing.T) {
	s, err := Load(writeFixture(t, fixtureCSV))
	require.NoError(t, err)
	assert.Equal(t, []string{"delta_auc_pct", "fe", "inhibitor"}, s.AttributeColumns())
}

func TestSearch(t *testing.T) {
	s, err := Load(writeFixture(t, fixtureCSV))
	require.NoError(t, err)

	assert.Empty(t, s.Search("", 50), "empty query matches nothing")
	assert.Equal(t, []string{"warfarin"}, s.Search("warf", 50))
	assert.Equal(t, []string{"aspirin", "digoxin", "warfarin"}, s.Search("i", 50))
	assert.Equal(t, []string{"aspirin", "digoxin"}, s.Search("i", 2), "limit truncates in sorted order")
}
