package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"newsapi/pkg/newsclient"
)

type cli struct {
	client *newsclient.Client
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid news ID: %s", arg)
	}
	return id, nil
}

// readImage loads a file and sniffs its content type.
func readImage(path string) (*newsclient.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return &newsclient.Image{
		Filename:    filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

func (c *cli) listCmd() *cobra.Command {
	var (
		params newsclient.ListParams
		format string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List and search news",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.client.List(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to list news: %w", err)
			}

			switch format {
			case "json":
				return printListJSON(cmd.OutOrStdout(), res)
			case "compact":
				printListCompact(cmd.OutOrStdout(), res.Items)
			default:
				printListTable(cmd.OutOrStdout(), res)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&params.Query, "query", "q", "", "search title, author, category and content")
	cmd.Flags().IntVar(&params.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&params.PageSize, "page-size", 0, "items per page (max 50)")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json or compact")
	return cmd
}

func (c *cli) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			n, err := c.client.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get news: %w", err)
			}
			printNews(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func (c *cli) createCmd() *cobra.Command {
	var (
		in        newsclient.CreateInput
		imagePath string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if imagePath != "" {
				img, err := readImage(imagePath)
				if err != nil {
					return err
				}
				in.Image = img
			}

			n, err := c.client.Create(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("failed to create news: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created news: %d\n", n.ID)
			printNews(cmd.OutOrStdout(), n)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "title (3-120 characters)")
	cmd.Flags().StringVar(&in.Content, "content", "", "content (at least 10 characters)")
	cmd.Flags().StringVar(&in.Author, "author", "", "author (2-60 characters)")
	cmd.Flags().StringVar(&in.Category, "category", "", "category (2-40 characters)")
	cmd.Flags().StringVar(&imagePath, "image", "", "path to a png, jpeg or webp image")
	return cmd
}

func (c *cli) updateCmd() *cobra.Command {
	var title, content, author, category, imagePath string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of an item",
		Long:  "Update fields of an item. Only the flags given on the command line are sent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var in newsclient.UpdateInput
			flags := cmd.Flags()
			if flags.Changed("title") {
				in.Title = &title
			}
			if flags.Changed("content") {
				in.Content = &content
			}
			if flags.Changed("author") {
				in.Author = &author
			}
			if flags.Changed("category") {
				in.Category = &category
			}
			if imagePath != "" {
				img, err := readImage(imagePath)
				if err != nil {
					return err
				}
				in.Image = img
			}

			n, err := c.client.Update(cmd.Context(), id, in)
			if err != nil {
				return fmt.Errorf("failed to update news: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated news: %d\n", n.ID)
			printNews(cmd.OutOrStdout(), n)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new content")
	cmd.Flags().StringVar(&author, "author", "", "new author")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().StringVar(&imagePath, "image", "", "path to a replacement image")
	return cmd
}

func (c *cli) setImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-image <id> <file>",
		Short: "Replace the image of an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			img, err := readImage(args[1])
			if err != nil {
				return err
			}
			if _, err := c.client.UpdateImage(cmd.Context(), id, img); err != nil {
				return fmt.Errorf("failed to set image: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Image set for news %d (%s, %d bytes)\n", id, img.ContentType, len(img.Data))
			return nil
		},
	}
}

func (c *cli) clearImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-image <id>",
		Short: "Remove the image of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.client.DeleteImage(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to clear image: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Image removed from news %d\n", id)
			return nil
		},
	}
}

func (c *cli) imageCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "image <id>",
		Short: "Print the image URL or download the image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), c.client.ImageURL(id))
				return nil
			}

			img, err := c.client.GetImage(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to download image: %w", err)
			}
			if err := os.WriteFile(outPath, img.Data, 0o644); err != nil {
				return fmt.Errorf("write image: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s (%s, %d bytes)\n", outPath, img.ContentType, len(img.Data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the image to this file instead of printing its URL")
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.client.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete news: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted news: %d\n", id)
			return nil
		},
	}
}
