// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/autoblog/internal/topics"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List, sample, or extend the topic catalog",
	Long: `Topics manages the JSON topic catalog. Categories hold either a list of
topics or named sub-categories. The built-in catalog is written the first time
the file is missing.

Examples:
  autoblog topics --list
  autoblog topics --random
  autoblog topics --random --category=tech
  autoblog topics --add --category=tech --topic="WebGPU in practice"
  autoblog topics --add --category=tech --subcategory=frontend --topic="React Server Components"`,
	RunE: runTopics,
}

func runTopics(cmd *cobra.Command, args []string) error {
	list, _ := cmd.Flags().GetBool("list")
	random, _ := cmd.Flags().GetBool("random")
	add, _ := cmd.Flags().GetBool("add")
	category, _ := cmd.Flags().GetString("category")
	subCategory, _ := cmd.Flags().GetString("subcategory")
	topic, _ := cmd.Flags().GetString("topic")

	if !list && !random && !add {
		return cmd.Help()
	}

	store, err := topics.Open(appConfig.Topics.CatalogFile, nil)
	if err != nil {
		return err
	}

	switch {
	case list:
		store.ListAll(os.Stdout)
	case random:
		t, err := store.RandomTopic(category)
		if err != nil {
			return err
		}
		fmt.Printf("Random topic: %s\n", t)
	case add:
		if category == "" || topic == "" {
			return fmt.Errorf("--add requires --category and --topic")
		}
		if err := store.AddTopic(category, topic, subCategory); err != nil {
			return err
		}
		fmt.Printf("Added topic: %s\n", topic)
	}
	return nil
}

func init() {
	topicsCmd.Flags().Bool("list", false, "list every category and topic")
	topicsCmd.Flags().Bool("random", false, "print one random topic")
	topicsCmd.Flags().Bool("add", false, "append a topic to the catalog")
	topicsCmd.Flags().String("category", "", "category to sample from or add to")
	topicsCmd.Flags().String("subcategory", "", "sub-category to add to")
	topicsCmd.Flags().String("topic", "", "topic to add")

	rootCmd.AddCommand(topicsCmd)
}
