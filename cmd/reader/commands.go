package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsdigest/pkg/feed"
	"newsdigest/pkg/news"

	"github.com/spf13/cobra"
)

var (
	flagUsername    string
	flagPassword    string
	flagInterest    string
	flagPages       int
	flagCategory    string
	flagTitle       string
	flagContent     string
	flagDescription string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print a session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newClient().Login(cmd.Context(), flagUsername, flagPassword)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.Token)
		return nil
	},
}

var interestsCmd = &cobra.Command{
	Use:   "interests",
	Short: "List your interests",
	RunE: func(cmd *cobra.Command, args []string) error {
		interests, err := newClient().Interests(cmd.Context())
		if err != nil {
			return err
		}
		for _, i := range interests {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i.ID, i.Name)
		}
		return nil
	},
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Load a personalized feed page by page",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagInterest == "" {
			return errors.New("--interest is required")
		}

		client := newClient()
		var lastQuery string
		fetch := func(ctx context.Context, interest string, page int, ts time.Time) ([]news.Article, error) {
			res, err := client.NewsForInterests(ctx, []string{interest}, page, ts)
			if err != nil {
				return nil, err
			}
			lastQuery = res.SearchQuery
			return res.Articles, nil
		}

		pager := feed.NewPager(fetch, flagInterest)
		if err := pager.Refresh(cmd.Context()); err != nil {
			return err
		}
		for pager.Page() < flagPages {
			if err := pager.LoadMore(cmd.Context()); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d articles over %d pages (last query %q)\n", pager.Interest(), len(pager.Articles()), pager.Page(), lastQuery)
		printArticles(out, pager.Articles())
		return nil
	},
}

var headlinesCmd = &cobra.Command{
	Use:   "headlines",
	Short: "Show top headlines",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := newClient().TopHeadlines(cmd.Context(), flagCategory, 1, 20)
		if err != nil {
			return err
		}
		printArticles(cmd.OutOrStdout(), list.Articles)
		return nil
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize an article",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newClient().Summarize(cmd.Context(), flagTitle, flagContent, flagDescription)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if res.Fallback {
			fmt.Fprintf(out, "(fallback summary: %s)\n\n", res.Error)
		}
		fmt.Fprintln(out, res.Summary)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&flagUsername, "username", "", "account username")
	loginCmd.Flags().StringVar(&flagPassword, "password", "", "account password")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("password")

	feedCmd.Flags().StringVar(&flagInterest, "interest", "", "interest to load news for")
	feedCmd.Flags().IntVar(&flagPages, "pages", 1, "number of pages to load")

	headlinesCmd.Flags().StringVar(&flagCategory, "category", "", "headline category (business, technology, ...)")

	summarizeCmd.Flags().StringVar(&flagTitle, "title", "", "article title")
	summarizeCmd.Flags().StringVar(&flagContent, "content", "", "article content")
	summarizeCmd.Flags().StringVar(&flagDescription, "description", "", "article description")
	summarizeCmd.MarkFlagRequired("title")
}
