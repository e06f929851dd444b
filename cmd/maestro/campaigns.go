package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-print"
	"github.com/maestro-marketing/go-maestro"
	"github.com/spf13/cobra"
)

func newCampaignsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaigns",
		Short: "Manage marketing campaigns",
	}

	cmd.AddCommand(newCampaignsListCmd())
	cmd.AddCommand(newCampaignsCreateCmd())
	cmd.AddCommand(newCampaignsDeleteCmd())
	return cmd
}

func newCampaignsListCmd() *cobra.Command {
	var opts maestro.CampaignListOptions
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			api, err := buildClient()
			if err != nil {
				return err
			}

			opts.Status = maestro.CampaignStatus(status)
			campaigns, err := maestro.NewCampaignsService(api).List(ctx, opts)
			if err != nil {
				return err
			}

			if jsonOutput {
				fmt.Println(print.MaybeHighlightJSON(campaigns))
				return nil
			}

			if len(campaigns) == 0 {
				fmt.Println("No campaigns found.")
				return nil
			}

			for _, c := range campaigns {
				fmt.Printf("%6d  %-10s  %-30s  %.2f\n", c.ID, c.Status, c.Name, c.Budget)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Skip, "skip", 0, "Number of campaigns to skip")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Maximum campaigns to return")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (draft|active|paused|completed)")
	return cmd
}

func newCampaignsCreateCmd() *cobra.Command {
	payload := maestro.CampaignPayload{}
	var status string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a campaign",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			payload.Status = maestro.CampaignStatus(status)
			if err := payload.Validate(); err != nil {
				return fmt.Errorf("invalid campaign: %w", err)
			}

			api, err := buildClient()
			if err != nil {
				return err
			}

			campaign, err := maestro.NewCampaignsService(api).Create(ctx, payload)
			if err != nil {
				return err
			}

			if jsonOutput {
				fmt.Println(print.MaybeHighlightJSON(campaign))
				return nil
			}

			fmt.Printf("Created campaign %d: %s\n", campaign.ID, campaign.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&payload.Name, "name", "", "Campaign name")
	cmd.Flags().StringVar(&payload.Description, "description", "", "Campaign description")
	cmd.Flags().Float64Var(&payload.Budget, "budget", 0, "Campaign budget")
	cmd.Flags().StringVar(&status, "status", string(maestro.CampaignDraft), "Campaign status")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newCampaignsDeleteCmd() *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a campaign",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			api, err := buildClient()
			if err != nil {
				return err
			}

			if err := maestro.NewCampaignsService(api).Delete(ctx, id); err != nil {
				return err
			}

			fmt.Printf("Deleted campaign %d\n", id)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Campaign ID")
	cmd.MarkFlagRequired("id")
	return cmd
}

func init() {
	rootCmd.AddCommand(newCampaignsCmd())
}
