package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Daewooki/simple-shorts-generator/pkg/shorts"
)

var (
	rootCmd = &cobra.Command{
		Use:   "shorts-generator",
		Short: "A compositing tool for short vertical videos",
		Long: `shorts-generator composites rendered slide images into a single vertical
video with zoom/fade animation, optional narration audio and background music.

Examples:
  # Compose a quote video from pre-rendered slides
  shorts-generator compose -i ./slides -t quote

  # Include narration clips and write to a custom path
  shorts-generator compose -i ./slides --narration ./tts -o out/final.mp4`,
	}

	composeCmd = &cobra.Command{
		Use:   "compose",
		Short: "Compose slide images into one video",
		Long: fmt.Sprintf(`Compose pre-rendered slide images (and optional per-slide narration audio)
into a single video with a Ken-Burns style zoom and fade transitions.

Supported content types:
%s
Example:
  shorts-generator compose -i ./slides --narration ./tts -t knowledge -c config.yaml`,
			formatSupportedTypes()),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &shorts.Options{}

			// Get flags
			slidesDir, _ := cmd.Flags().GetString("slides")
			narrationDir, _ := cmd.Flags().GetString("narration")
			outputPath, _ := cmd.Flags().GetString("output")
			contentType, _ := cmd.Flags().GetString("type")
			topic, _ := cmd.Flags().GetString("topic")
			configPath, _ := cmd.Flags().GetString("config")
			verbose, _ := cmd.Flags().GetBool("verbose")

			// Set options
			opts.SlidesDir = slidesDir
			opts.NarrationDir = narrationDir
			opts.OutputPath = outputPath
			opts.ContentType = contentType
			opts.Topic = topic
			opts.ConfigPath = configPath
			opts.Verbose = verbose

			if opts.SlidesDir == "" {
				return fmt.Errorf("slides directory is required")
			}

			result, err := shorts.Compose(opts)
			if err != nil {
				return err
			}

			fmt.Printf("Created %s (%.1f MB, %.1fs)\n",
				result.OutputPath, float64(result.SizeBytes)/1024/1024, result.TotalSeconds)
			if len(result.FailedSlides) > 0 {
				fmt.Printf("Warning: %d slide(s) failed to encode and were skipped\n",
					len(result.FailedSlides))
			}
			return nil
		},
	}

	typesCmd = &cobra.Command{
		Use:   "types",
		Short: "List supported content types",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(formatSupportedTypes())
		},
	}
)

func formatSupportedTypes() string {
	var sb strings.Builder
	for _, name := range shorts.GetSupportedContentTypes() {
		sb.WriteString(fmt.Sprintf("- %s\n", name))
	}
	return sb.String()
}

func init() {
	composeCmd.Flags().StringP("slides", "i", "", "Directory of rendered slide images")
	composeCmd.Flags().String("narration", "", "Directory of per-slide narration audio")
	composeCmd.Flags().StringP("output", "o", "", "Output video path")
	composeCmd.Flags().StringP("type", "t", "quote",
		fmt.Sprintf("Content type (%s)", strings.Join(shorts.GetSupportedContentTypes(), ", ")))
	composeCmd.Flags().String("topic", "", "Free-text topic (used with --type custom)")
	composeCmd.Flags().StringP("config", "c", "", "Config file path")
	composeCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	composeCmd.MarkFlagRequired("slides")

	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(typesCmd)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
