package cli_test

import (
	"bytes"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/temirov/pypub/cmd/cli"
	"github.com/temirov/pypub/internal/publish"
)

const (
	embeddedDefaultLogLevelConstant        = "info"
	embeddedDefaultLogFormatConstant       = "structured"
	publishSectionConfigurationKeyConstant = "tools.publish"
)

func decodeEmbeddedApplicationConfiguration(testingInstance testing.TB) (*viper.Viper, cli.ApplicationConfiguration) {
	testingInstance.Helper()

	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()
	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)

	readError := viperInstance.ReadConfig(bytes.NewReader(configurationData))
	require.NoError(testingInstance, readError)

	var configuration cli.ApplicationConfiguration
	unmarshalError := viperInstance.Unmarshal(&configuration)
	require.NoError(testingInstance, unmarshalError)

	return viperInstance, configuration
}

func TestEmbeddedDefaultsMatchCommandDefaults(t *testing.T) {
	_, configuration := decodeEmbeddedApplicationConfiguration(t)

	require.Equal(t, embeddedDefaultLogLevelConstant, configuration.Common.LogLevel)
	require.Equal(t, embeddedDefaultLogFormatConstant, configuration.Common.LogFormat)
	require.Equal(t, publish.DefaultCommandConfiguration(), configuration.Tools.Publish.Sanitize())
}

func TestEmbeddedPublishSectionDecodesWithMapstructure(t *testing.T) {
	viperInstance, _ := decodeEmbeddedApplicationConfiguration(t)

	publishSection := viperInstance.GetStringMap(publishSectionConfigurationKeyConstant)
	require.NotEmpty(t, publishSection)

	var configuration publish.CommandConfiguration
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "mapstructure", Result: &configuration})
	require.NoError(t, decoderError)
	require.NoError(t, decoder.Decode(publishSection))

	require.Equal(t, publish.DefaultCommandConfiguration(), configuration.Sanitize())
}

func TestEmbeddedDefaultConfigurationReturnsCopy(t *testing.T) {
	firstCopy, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEmpty(t, firstCopy)

	firstCopy[0] = '#'

	secondCopy, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEqual(t, firstCopy[0], secondCopy[0])
}
