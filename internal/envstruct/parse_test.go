package envstruct_test

import (
	"strings"
	"testing"
	"time"

	"github.com/myrjola/existyet/internal/envstruct"
	"github.com/stretchr/testify/require"
)

func TestPopulate(t *testing.T) {
	type args struct {
		v         any
		lookupEnv func(string) (string, bool)
	}
	unset := func(_ string) (string, bool) { return "", false }
	tests := []struct {
		name    string
		args    args
		want    any
		wantErr error
	}{
		{
			name:    "nil",
			args:    args{v: nil, lookupEnv: unset},
			wantErr: envstruct.ErrInvalidValue,
		},
		{
			name:    "not pointer",
			args:    args{v: struct{}{}, lookupEnv: unset},
			wantErr: envstruct.ErrInvalidValue,
		},
		{
			name: "missing required variable",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					APIKey string `env:"PERPLEXITY_API_KEY"`
				}{},
				lookupEnv: unset,
			},
			wantErr: envstruct.ErrEnvNotSet,
		},
		{
			name: "picks correct env variable",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Addr       string `env:"EXISTYET_ADDR"`
					SheetID    string `env:"GOOGLE_SHEETS_ID"`
					OtherValue string
				}{},
				lookupEnv: func(s string) (string, bool) { return strings.ToLower(s), true },
			},
			want: &struct {
				Addr       string
				SheetID    string
				OtherValue string
			}{Addr: "existyet_addr", SheetID: "google_sheets_id", OtherValue: ""},
		},
		{
			name: "empty default makes variable optional",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Token string `env:"GITHUB_ACCESS_TOKEN" envDefault:""`
					URL   string `env:"PERPLEXITY_BASE_URL" envDefault:"https://api.perplexity.ai"`
				}{},
				lookupEnv: unset,
			},
			want: &struct {
				Token string
				URL   string
			}{Token: "", URL: "https://api.perplexity.ai"},
		},
		{
			name: "parses bool, int and duration",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Debug   bool          `env:"DEBUG"`
					Limit   int           `env:"LIMIT"`
					Timeout time.Duration `env:"TIMEOUT" envDefault:"60s"`
				}{},
				lookupEnv: func(s string) (string, bool) {
					switch s {
					case "DEBUG":
						return "true", true
					case "LIMIT":
						return "5", true
					default:
						return "", false
					}
				},
			},
			want: &struct {
				Debug   bool
				Limit   int
				Timeout time.Duration
			}{Debug: true, Limit: 5, Timeout: time.Minute},
		},
		{
			name: "rejects unparsable int",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Limit int `env:"LIMIT"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "many", true },
			},
			wantErr: envstruct.ErrParse,
		},
		{
			name: "rejects unsupported types",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Ratio float64 `env:"RATIO"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "0.7", true },
			},
			wantErr: envstruct.ErrInvalidValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.args.v
			err := envstruct.Populate(v, tt.args.lookupEnv)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.EqualValues(t, tt.want, v)
		})
	}
}
