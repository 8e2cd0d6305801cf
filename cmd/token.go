// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const clientSecretEnv = "PROVISIONING_CLIENT_SECRET"

type tokenOptions struct {
	clientID     string
	clientSecret string
	tokenURL     string
	issuerURL    string
	scopes       []string
	format       string
}

var tokenOpts = new(tokenOptions)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Get a provisioning operator access token using the client credentials flow",
	Long: `Get an access token for the organization API. The client must be listed in
AUTHENTICATION_ALLOWED_SUBJECTS (or be granted AUTHENTICATION_REQUIRED_SCOPE) and hold the
admin relation, see create-fga-model --admin. The secret can be passed through ` + clientSecretEnv + `.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenOpts.clientSecret == "" {
			tokenOpts.clientSecret = os.Getenv(clientSecretEnv)
		}

		token, err := fetchToken(cmd.Context(), tokenOpts)
		if err != nil {
			return err
		}

		return writeToken(cmd.OutOrStdout(), token, tokenOpts.format == "json")
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&tokenOpts.clientID, "client-id", "", "Client ID")
	tokenCmd.Flags().StringVar(&tokenOpts.clientSecret, "client-secret", "", "Client Secret, defaults to $"+clientSecretEnv)
	tokenCmd.Flags().StringVar(&tokenOpts.tokenURL, "token-url", "", "Token URL")
	tokenCmd.Flags().StringVar(&tokenOpts.issuerURL, "issuer-url", "", "Issuer URL (for OIDC discovery)")
	tokenCmd.Flags().StringSliceVar(&tokenOpts.scopes, "scopes", []string{}, "Scopes (comma-separated)")
	tokenCmd.Flags().StringVarP(&tokenOpts.format, "format", "f", "text", "Output format (text or json)")

	_ = tokenCmd.MarkFlagRequired("client-id")
}

func fetchToken(ctx context.Context, opts *tokenOptions) (*oauth2.Token, error) {
	if opts.clientSecret == "" {
		return nil, fmt.Errorf("a client secret is required, use --client-secret or %s", clientSecretEnv)
	}

	httpClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)

	tokenURL := opts.tokenURL
	if tokenURL == "" {
		if opts.issuerURL == "" {
			return nil, fmt.Errorf("either --token-url or --issuer-url must be provided")
		}

		provider, err := oidc.NewProvider(oidc.ClientContext(ctx, httpClient), opts.issuerURL)
		if err != nil {
			return nil, fmt.Errorf("failed to discover token endpoint: %v", err)
		}
		tokenURL = provider.Endpoint().TokenURL
	}

	config := &clientcredentials.Config{
		ClientID:     opts.clientID,
		ClientSecret: opts.clientSecret,
		TokenURL:     tokenURL,
		Scopes:       opts.scopes,
	}

	token, err := config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %v", err)
	}

	return token, nil
}

func writeToken(out io.Writer, token *oauth2.Token, jsonOutput bool) error {
	if !jsonOutput {
		_, err := fmt.Fprintln(out, token.AccessToken)
		return err
	}

	output := struct {
		AccessToken string    `json:"access_token"`
		TokenType   string    `json:"token_type"`
		Expiry      time.Time `json:"expiry"`
		Scope       string    `json:"scope,omitempty"`
	}{
		AccessToken: token.AccessToken,
		TokenType:   token.Type(),
		Expiry:      token.Expiry,
	}

	if scope, ok := token.Extra("scope").(string); ok {
		output.Scope = scope
	}

	return json.NewEncoder(out).Encode(output)
}
