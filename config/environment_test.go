package config

import "testing"

func TestAppEnvironmentDefault(t *testing.T) {
	t.Setenv(appEnvVar, "")
	if env := AppEnvironment(); env != EnvironmentDevelopment {
		t.Fatalf("expected development default, got %q", env)
	}
}

func TestAppEnvironmentAliases(t *testing.T) {
	cases := map[string]string{
		"prod":     EnvironmentProduction,
		"PROD":     EnvironmentProduction,
		"stag":     EnvironmentStaging,
		"stagging": EnvironmentStaging,
		"custom":   "custom",
	}
	for raw, want := range cases {
		t.Setenv(appEnvVar, raw)
		if env := AppEnvironment(); env != want {
			t.Errorf("APP_ENV=%q: got %q, want %q", raw, env, want)
		}
	}
}

func TestResolveConfigPathExplicitWins(t *testing.T) {
	t.Setenv(appEnvVar, "production")
	if got := ResolveConfigPath("custom/path.yml"); got != "custom/path.yml" {
		t.Fatalf("explicit path overridden: %q", got)
	}
}

func TestResolveConfigPathFallsBackWhenEnvFileMissing(t *testing.T) {
	t.Setenv(appEnvVar, "production")
	// No production file exists in the test working directory, so the
	// default path is returned unchanged.
	if got := ResolveConfigPath(defaultConfigPath); got != defaultConfigPath {
		t.Fatalf("expected fallback to %q, got %q", defaultConfigPath, got)
	}
}

func TestIsProductionLike(t *testing.T) {
	if !IsProductionLike(EnvironmentProduction) || !IsProductionLike(EnvironmentStaging) {
		t.Fatalf("production and staging should be production-like")
	}
	if IsProductionLike(EnvironmentDevelopment) {
		t.Fatalf("development should not be production-like")
	}
}
