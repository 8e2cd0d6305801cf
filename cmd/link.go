// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/canonical/org-provisioning-service/pkg/linking"
)

var linkCmd = &cobra.Command{
	Use:   "link [identity-id] [email]",
	Short: "Link pending memberships of an email to an identity",
	Long:  `Replays the login webhook, binding every pending membership addressed to the email to the given identity.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey, _ := cmd.Flags().GetString("api-key")

		req := new(linking.LoginWebhookRequest)
		req.IdentityID = args[0]
		req.Email = args[1]

		_, err := newWebhookClient(httpEndpoint, apiKey).do(context.Background(), http.MethodPost, "/api/v0/webhooks/login", req, nil)
		if err != nil {
			return fmt.Errorf("failed to link memberships: %w", err)
		}

		fmt.Printf("Pending memberships for %s linked to %s\n", args[1], args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)

	linkCmd.Flags().String("api-key", "", "Webhook API key")
}
