package config

import (
	"reflect"
	"testing"
)

func TestAllowedOriginsTrimsAndDropsEmpty(t *testing.T) {
	prev := AppConfig
	t.Cleanup(func() { AppConfig = prev })

	AppConfig.CORSOrigins = " https://app.theray.io , ,http://localhost:3000,"
	got := AllowedOrigins()
	want := []string{"https://app.theray.io", "http://localhost:3000"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestIsProduction(t *testing.T) {
	prev := AppConfig
	t.Cleanup(func() { AppConfig = prev })

	AppConfig.Env = "production"
	if !IsProduction() {
		t.Fatal("expected production")
	}
	AppConfig.Env = "development"
	if IsProduction() {
		t.Fatal("expected non-production")
	}
}
