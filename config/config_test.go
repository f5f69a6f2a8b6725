package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "single", in: "http://a", want: []string{"http://a"}},
		{name: "trims and skips blanks", in: " http://a , ,http://b ", want: []string{"http://a", "http://b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitList(tt.in))
		})
	}
}

func TestRedactedMasksSecrets(t *testing.T) {
	cfg := Config{}
	cfg.Server.SessionSecret = "s3cret"
	cfg.Database.Password = "pw"
	cfg.Gemini.APIKey = "key"

	r := cfg.Redacted()

	assert.Equal(t, "****", r.Server.SessionSecret)
	assert.Equal(t, "****", r.Database.Password)
	assert.Equal(t, "****", r.Gemini.APIKey)
	assert.Equal(t, "", r.Auth.SeedOwnerPassword)
	assert.Equal(t, "s3cret", cfg.Server.SessionSecret)
}

func TestDSN(t *testing.T) {
	d := Database{Host: "db", Port: "5432", User: "u", Password: "p", Name: "lawdesk", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=lawdesk port=5432 sslmode=disable", d.DSN())
}
