// contentctl is the operator CLI for the content admin backend. It drives
// bulk imports against a running server and backfills missing long-form
// content directly against the database.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"project/config"
	"project/database"
	"project/models"
	"project/repository"
	"project/services"
	"project/tracking"
)

// exclusionHint is how many recent ledger entries are shown for the next
// generation run.
const exclusionHint = 20

var (
	apiURL       string
	trackingFile string
)

func main() {
	config.LoadConfig()

	rootCmd := &cobra.Command{
		Use:   "contentctl",
		Short: "Operator tooling for the wellness content library",
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", config.AppConfig.APIURL, "base URL of the admin API")
	rootCmd.PersistentFlags().StringVar(&trackingFile, "tracking-file", config.AppConfig.TrackingFile, "path to the import tracking ledger")

	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(backfillCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <path-to-json>",
		Short: "Import a batch of generated content items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath := args[0]

			fmt.Printf("Reading %s...\n", filePath)
			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", filePath, err)
			}

			var content models.ImportRequest
			if err := json.Unmarshal(data, &content); err != nil || content.Items == nil {
				return fmt.Errorf("invalid format in %s, expected { items: [...] }", filePath)
			}
			fmt.Printf("Found %d items\n", len(content.Items))

			ledger, err := tracking.Load(trackingFile)
			if err != nil {
				return err
			}
			if len(ledger.IDs) > 0 || len(ledger.Labels) > 0 {
				fmt.Printf("Already imported: %d IDs, %d labels\n", len(ledger.IDs), len(ledger.Labels))
			}

			fmt.Printf("\nImporting to %s/api/import...\n", apiURL)
			result, err := postImport(apiURL, data)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			fmt.Println("\nImport complete!")
			fmt.Printf("   - Imported: %d\n", result.Success)
			fmt.Printf("   - Skipped: %d\n", result.Skipped)
			fmt.Printf("   - Failed: %d\n", result.Failed)

			if len(result.Errors) > 0 {
				fmt.Println("\nErrors/Skips:")
				shown := result.Errors
				if len(shown) > 10 {
					shown = shown[:10]
				}
				for _, e := range shown {
					fmt.Printf("   - %s\n", e)
				}
				if len(result.Errors) > 10 {
					fmt.Printf("   ... and %d more\n", len(result.Errors)-10)
				}
			}

			// Record everything we attempted, successful or not, so the
			// generator is not asked to produce these again.
			ids := make([]string, 0, len(content.Items))
			labels := make([]string, 0, len(content.Items))
			for _, item := range content.Items {
				ids = append(ids, item.ID)
				labels = append(labels, item.Label)
			}
			ledger.Merge(ids, labels)
			if err := ledger.Save(trackingFile); err != nil {
				return err
			}
			fmt.Printf("\nTracking file updated: %d total IDs\n", len(ledger.IDs))

			excludeIDs, _ := json.Marshal(ledger.RecentIDs(exclusionHint))
			excludeLabels, _ := json.Marshal(ledger.RecentLabels(exclusionHint))
			fmt.Println("\nFor your NEXT generation run, use:")
			fmt.Printf("   EXCLUDE_IDS: %s\n", excludeIDs)
			fmt.Printf("   EXCLUDE_LABELS: %s\n", excludeLabels)
			fmt.Printf("\n   (Showing last %d for brevity - full list saved)\n", exclusionHint)
			return nil
		},
	}
}

func backfillCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Fill in missing long-form detail fields on existing content",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Init()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			contentRepo := repository.NewContentRepository(db)
			backfill := services.NewBackfillService(contentRepo, config.AppConfig.OpenAI)

			fmt.Println("Finding content items that need backfilling...")
			result, err := backfill.Backfill(context.Background(), limit)
			if err != nil {
				return err
			}
			if result.Scanned == 0 {
				fmt.Println("All content is up to date!")
				return nil
			}
			fmt.Printf("\nBackfill complete: %d scanned, %d updated, %d failed.\n",
				result.Scanned, result.Updated, result.Failed)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of items to backfill in one run")
	return cmd
}

// postImport posts the raw import document and decodes the batch result.
func postImport(apiURL string, body []byte) (*models.ImportResult, error) {
	resp, err := http.Post(apiURL+"/api/import", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result models.ImportResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode import result: %w", err)
	}
	return &result, nil
}
