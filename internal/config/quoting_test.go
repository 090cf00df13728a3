package config

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

func TestGodotenvQuoting(t *testing.T) {
	content := "BAGCALC_BAGS_FILE='event bags \"spring\".yaml'\nBAGCALC_TIMEOUT=\"20s\" # seconds\n"
	tmpfile, err := os.CreateTemp("", ".env.test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	env, err := godotenv.Read(tmpfile.Name())
	if err != nil {
		t.Fatalf("Error reading env: %v", err)
	}

	expected := `event bags "spring".yaml`
	if env["BAGCALC_BAGS_FILE"] != expected {
		t.Errorf("Expected %s, got %s", expected, env["BAGCALC_BAGS_FILE"])
	}
	if env["BAGCALC_TIMEOUT"] != "20s" {
		t.Errorf("Expected 20s, got %s", env["BAGCALC_TIMEOUT"])
	}
}
