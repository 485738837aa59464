package configuration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestConfiguration tests the configuration package basic functionality
func TestConfiguration(t *testing.T) {
	t.Run("configuration_struct_exists", func(t *testing.T) {
		require.NotNil(t, &C, "Configuration should not be nil")
		require.NotNil(t, &C.App, "App configuration should exist")
		require.NotNil(t, &C.Database, "Database configuration should exist")
	})

	t.Run("defaults_applied", func(t *testing.T) {
		require.NotZero(t, C.App.Port, "App port should have a default")
		require.Equal(t, "https://www.linkedin.com/oauth/v2", C.LinkedIn.AuthBaseURL)
		require.Equal(t, "https://api.linkedin.com", C.LinkedIn.APIBaseURL)
		require.NotEmpty(t, C.LinkedIn.Version, "LinkedIn-Version header default should be set")
		require.NotEmpty(t, C.Database.Mongo.Name, "Mongo database name should have a default")
		require.Equal(t, "1433", C.Database.Mssql.Port)
	})
}
