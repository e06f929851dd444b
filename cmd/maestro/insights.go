package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-print"
	"github.com/maestro-marketing/go-maestro"
	"github.com/spf13/cobra"
)

// readCampaignData loads the JSON campaign payload from a file, or stdin when
// path is "-".
func readCampaignData(path string) (map[string]any, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read campaign data: %w", err)
	}

	payload := map[string]any{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse campaign data: %w", err)
	}
	return payload, nil
}

func newPredictCmd() *cobra.Command {
	var dataPath string

	cmd := &cobra.Command{
		Use:   "predict [ctr|roi]",
		Short: "Predict campaign performance",
		Long:  "Send campaign data to the prediction service and print the predicted metric.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			payload, err := readCampaignData(dataPath)
			if err != nil {
				return err
			}

			api, err := buildClient()
			if err != nil {
				return err
			}

			svc := maestro.NewStrategicMindService(api)

			var result map[string]any
			switch args[0] {
			case "ctr":
				result, err = svc.PredictCTR(ctx, payload)
			case "roi":
				result, err = svc.PredictROI(ctx, payload)
			default:
				return fmt.Errorf("unknown metric %q (expected ctr or roi)", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Println(print.MaybeHighlightJSON(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "-", "Campaign data JSON file (- for stdin)")
	return cmd
}

func newRecommendCmd() *cobra.Command {
	var dataPath string

	cmd := &cobra.Command{
		Use:   "recommend channels",
		Short: "Recommend marketing channels for a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] != "channels" {
				return fmt.Errorf("unknown recommendation %q (expected channels)", args[0])
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			payload, err := readCampaignData(dataPath)
			if err != nil {
				return err
			}

			api, err := buildClient()
			if err != nil {
				return err
			}

			result, err := maestro.NewStrategicMindService(api).RecommendChannels(ctx, payload)
			if err != nil {
				return err
			}

			fmt.Println(print.MaybeHighlightJSON(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "-", "Campaign data JSON file (- for stdin)")
	return cmd
}

func init() {
	rootCmd.AddCommand(newPredictCmd())
	rootCmd.AddCommand(newRecommendCmd())
}
