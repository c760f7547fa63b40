package config

import (
	"path/filepath"
	"testing"

	"nq2jld/internal/jsonld"
	"nq2jld/internal/projectpath"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleConfigs = filepath.Join(projectpath.Root, "testHelpers", "sampleConfigs")

func TestReadConfig(t *testing.T) {
	v, err := ReadConfig("nq2jld.yaml", sampleConfigs)
	require.NoError(t, err)

	res := v.Sub("minio")
	require.NotNil(t, res, "no minio config")
	assert.Equal(t, 9000, res.GetInt("port"))

	bucket, err := GetBucketName(v)
	require.NoError(t, err)
	assert.Equal(t, "nq2jldbucket", bucket)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig("doesNotExist.yaml", sampleConfigs)
	assert.Error(t, err)
}

func TestReadConfigPath(t *testing.T) {
	v, err := ReadConfigPath(filepath.Join(sampleConfigs, "nq2jld.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, v.ConfigFileUsed())
}

func TestSources(t *testing.T) {
	v, err := ReadConfig("nq2jld.yaml", sampleConfigs)
	require.NoError(t, err)

	sources, err := GetSources(v)
	require.NoError(t, err)
	require.Len(t, sources, 3)
	assert.Equal(t, FileSource, sources[0].SourceType)
	assert.True(t, sources[0].Active, "sources are active unless disabled")
	assert.False(t, sources[2].Active)

	active, err := GetActiveSources(v)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	assert.Len(t, FilterSourcesByType(sources, URLSource), 0)
	assert.Len(t, FilterSourcesByType(sources, FileSource), 2)

	org, err := GetSourceByName(sources, "org")
	require.NoError(t, err)
	assert.Equal(t, "org.jsonld", org.URL)
	assert.NotEmpty(t, org.Select)

	_, err = GetSourceByName(sources, "nope")
	assert.Error(t, err)
}

func TestPruneSources(t *testing.T) {
	v, err := ReadConfig("nq2jld.yaml", sampleConfigs)
	require.NoError(t, err)

	v, err = PruneSources(v, []string{"disabled"})
	require.NoError(t, err)
	active, err := GetActiveSources(v)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "disabled", active[0].Name)

	_, err = PruneSources(v, []string{"missing"})
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestReadConvertConfig(t *testing.T) {
	v, err := ReadConfig("nq2jld.yaml", sampleConfigs)
	require.NoError(t, err)

	c, err := ReadConvertConfig(v)
	require.NoError(t, err)
	assert.True(t, c.Pretty)
	assert.False(t, c.Graph)
	assert.Equal(t, DefaultOutputKey, c.OutputKey)
	policy, err := c.Policy()
	require.NoError(t, err)
	assert.Equal(t, jsonld.TypeLiteralsKeep, policy)
}

func TestReadConvertConfigDefaultsAndErrors(t *testing.T) {
	c, err := ReadConvertConfig(SetupHelper(map[string]interface{}{}))
	require.NoError(t, err)
	assert.False(t, c.Pretty)
	assert.Equal(t, DefaultOutputKey, c.OutputKey)
	opts, err := c.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	_, err = ReadConvertConfig(SetupHelper(map[string]interface{}{
		"convert": map[string]interface{}{"typeliterals": "sometimes"},
	}))
	assert.ErrorIs(t, err, jsonld.ErrUnknownTypeLiteralPolicy)
}

func TestConvertOptionsRejectsUnknownPolicy(t *testing.T) {
	opts, err := Convert{TypeLiterals: "sometimes"}.Options()
	assert.ErrorIs(t, err, jsonld.ErrUnknownTypeLiteralPolicy)
	assert.Nil(t, opts)

	// an unset policy means keep
	opts, err = Convert{}.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 1)
}

func TestReadMinioConfig(t *testing.T) {
	_, err := ReadMinioConfig(nil)
	assert.ErrorIs(t, err, ErrNoMinioConfig)

	v := SetupHelper(map[string]interface{}{
		"minio": map[string]interface{}{"address": "s3.example.org", "port": 0, "bucket": "b"},
	})
	m, err := ReadMinioConfig(v.Sub("minio"))
	require.NoError(t, err)
	assert.Equal(t, "s3.example.org", m.Address)
	assert.Equal(t, 0, m.Port)
	assert.Equal(t, "b", m.Bucket)
}
