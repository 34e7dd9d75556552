package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// Check reports the state of the configured Spotify credentials and verifies
// them against the token endpoint. Secrets are never printed in full.
func (r *Runner) Check(ctx context.Context, cmd *cli.Command) error {
	creds := r.config.Credentials.Spotify

	diag := map[string]any{
		"clientIdExists":     creds.ClientID != "",
		"clientIdLength":     len(creds.ClientID),
		"clientIdPrefix":     maskPrefix(creds.ClientID),
		"clientSecretExists": creds.ClientSecret != "",
		"clientSecretLength": len(creds.ClientSecret),
		"redirectUri":        creds.RedirectURI,
		"tokenEndpoint":      "not checked",
	}

	if r.catalog != nil {
		if err := r.catalog.VerifyCredentials(ctx); err != nil {
			diag["tokenEndpoint"] = "rejected: " + err.Error()
		} else {
			diag["tokenEndpoint"] = "ok"
		}
	} else if r.credErr != nil {
		diag["tokenEndpoint"] = "unavailable: " + r.credErr.Error()
	}

	if cmd.Bool("json") {
		return r.writeJSON(diag, true)
	}

	r.writePlain("Spotify credential check\n")
	r.writePlain("  client id:     %v (length %d, prefix %q)\n", diag["clientIdExists"], diag["clientIdLength"], diag["clientIdPrefix"])
	r.writePlain("  client secret: %v (length %d)\n", diag["clientSecretExists"], diag["clientSecretLength"])
	r.writePlain("  redirect uri:  %v\n", diag["redirectUri"])
	r.writePlain("  token fetch:   %v\n", diag["tokenEndpoint"])

	return nil
}

func maskPrefix(s string) string {
	if len(s) <= 4 {
		return s
	}
	return s[:4] + "..."
}
