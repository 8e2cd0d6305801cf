// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonical/org-provisioning-service/pkg/provisioning"
)

var organizationCmd = &cobra.Command{
	Use:     "organization",
	Aliases: []string{"org"},
	Short:   "Manage organizations",
}

var createOrganizationCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Provision a new organization and bind its owner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &provisioning.CreateOrganizationRequest{Name: args[0]}
		req.Category, _ = cmd.Flags().GetString("category")
		req.Plan, _ = cmd.Flags().GetString("plan")
		req.Phone, _ = cmd.Flags().GetString("phone")
		req.ClientID, _ = cmd.Flags().GetString("client-id")

		if email, _ := cmd.Flags().GetString("email"); email != "" {
			nc := new(provisioning.NewClient)
			nc.Email = email
			nc.FirstName, _ = cmd.Flags().GetString("first-name")
			nc.LastName, _ = cmd.Flags().GetString("last-name")
			nc.Phone = req.Phone
			req.NewClient = nc
		}

		resp := new(provisioning.CreateOrganizationResponse)
		code, err := newAPIClient(httpEndpoint).do(context.Background(), http.MethodPost, "/api/v0/organizations", req, resp)
		if err != nil {
			return fmt.Errorf("failed to create organization: %w", err)
		}

		if code == http.StatusOK {
			fmt.Printf("Organization already exists: %s (ID: %s)\n", resp.Organization.Name, resp.Organization.ID)
		} else {
			fmt.Printf("Organization created: %s (ID: %s)\n", resp.Organization.Name, resp.Organization.ID)
		}

		if a := resp.Assignment; a != nil {
			switch {
			case a.Immediate:
				fmt.Printf("Owner %s linked to identity %s\n", a.Email, a.UserID)
			case a.Invitation && a.ExpiresAt != nil:
				fmt.Printf("Owner %s invited, invitation expires at %s\n", a.Email, a.ExpiresAt.Format(time.RFC3339))
			case a.Invitation:
				fmt.Printf("Owner %s invited\n", a.Email)
			}
			if a.Note != "" {
				fmt.Println(a.Note)
			}
		}
		return nil
	},
}

var getOrganizationCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show an organization with its memberships and invitations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		details := new(provisioning.OrganizationDetails)
		_, err := newAPIClient(httpEndpoint).do(context.Background(), http.MethodGet, "/api/v0/organizations/"+url.PathEscape(args[0]), nil, details)
		if err != nil {
			return fmt.Errorf("failed to get organization: %w", err)
		}

		org := details.Organization
		fmt.Printf("%s (ID: %s) plan=%s category=%s\n\n", org.Name, org.ID, org.Plan, org.Category)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "MEMBERSHIP\tEMAIL\tROLE\tSTATE\tUSER_ID")
		for _, m := range details.Memberships {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Email, m.Role, m.State, m.UserID)
		}
		w.Flush()

		if len(details.Invitations) == 0 {
			return nil
		}

		fmt.Println()
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "INVITATION\tEMAIL\tINVITED_BY\tEXPIRES_AT\tEXPIRED")
		for _, i := range details.Invitations {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n", i.ID, i.Email, i.InvitedBy, i.ExpiresAt.Format(time.RFC3339), i.Expired)
		}
		w.Flush()
		return nil
	},
}

var listOrphanedOrganizationsCmd = &cobra.Command{
	Use:   "orphans",
	Short: "List organizations that have no owner membership",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt64("page")
		size, _ := cmd.Flags().GetInt64("size")

		q := url.Values{}
		q.Set("page", fmt.Sprint(page))
		q.Set("size", fmt.Sprint(size))

		resp := new(provisioning.OrphanedOrganizations)
		_, err := newAPIClient(httpEndpoint).do(context.Background(), http.MethodGet, "/api/v0/organizations/orphans?"+q.Encode(), nil, resp)
		if err != nil {
			return fmt.Errorf("failed to list orphaned organizations: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCREATED_AT")
		for _, o := range resp.Organizations {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", o.ID, o.Name, o.Email, o.CreatedAt.Format(time.RFC3339))
		}
		w.Flush()

		fmt.Printf("\nTotal: %d\n", resp.Total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(organizationCmd)
	organizationCmd.AddCommand(createOrganizationCmd)
	organizationCmd.AddCommand(getOrganizationCmd)
	organizationCmd.AddCommand(listOrphanedOrganizationsCmd)

	createOrganizationCmd.Flags().String("category", "", "Organization category")
	createOrganizationCmd.Flags().String("plan", "", "Subscription plan")
	createOrganizationCmd.Flags().String("phone", "", "Contact phone")
	createOrganizationCmd.Flags().String("client-id", "", "ID of an existing client")
	createOrganizationCmd.Flags().String("email", "", "Email of a new client")
	createOrganizationCmd.Flags().String("first-name", "", "First name of a new client")
	createOrganizationCmd.Flags().String("last-name", "", "Last name of a new client")
	createOrganizationCmd.MarkFlagsMutuallyExclusive("client-id", "email")
	createOrganizationCmd.MarkFlagsOneRequired("client-id", "email")
	_ = createOrganizationCmd.MarkFlagRequired("category")
	_ = createOrganizationCmd.MarkFlagRequired("plan")

	listOrphanedOrganizationsCmd.Flags().Int64("page", 1, "Page number")
	listOrphanedOrganizationsCmd.Flags().Int64("size", 100, "Page size")
}
