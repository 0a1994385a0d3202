package main

import (
	"fmt"
	"io"
	"os"

	"newsdigest/pkg/apiclient"
	"newsdigest/pkg/news"

	"github.com/spf13/cobra"
)

var (
	flagServer string
	flagToken  string
)

var rootCmd = &cobra.Command{
	Use:          "reader",
	Short:        "Terminal reader for newsdigest",
	Long:         "reader talks to a newsdigest server: headlines, AI summaries and an incremental personalized feed.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "http://localhost:8080", "newsdigest server URL")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", os.Getenv("NEWSDIGEST_TOKEN"), "session token (defaults to $NEWSDIGEST_TOKEN)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(interestsCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(headlinesCmd)
	rootCmd.AddCommand(summarizeCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(flagServer, flagToken)
}

func printArticles(w io.Writer, articles []news.Article) {
	for i, a := range articles {
		fmt.Fprintf(w, "%3d. %s\n", i+1, a.Title)
		if a.Source.Name != "" {
			fmt.Fprintf(w, "     %s | %s\n", a.Source.Name, a.PublishedAt)
		}
		fmt.Fprintf(w, "     %s\n", a.URL)
	}
}
