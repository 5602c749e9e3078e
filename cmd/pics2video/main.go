package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivlev/pics2video/internal/config"
	"github.com/ivlev/pics2video/internal/engine"
	"github.com/ivlev/pics2video/internal/source"
	"github.com/ivlev/pics2video/internal/system"
	"github.com/ivlev/pics2video/internal/video"
)

var rootCmd = &cobra.Command{
	Use:   "pics2video",
	Short: "Turn a directory of photos into slideshow videos with a Ken Burns zoom",
	Long: `pics2video converts a directory of still images into one or more H.264
slideshow videos. Every image becomes a timed clip with a slow centered
zoom, clips are joined in filename order, and a background audio track is
looped or trimmed to match.

Examples:
  # one video per 10 images, 2s per image, audio from track.mp3
  pics2video render -i ./pics -a track.mp3 -o ./out

  # vertical format, faster cuts, at most 2 videos
  pics2video render -i ./pics --preset 9:16 --segment-duration 1.5 --max-videos 2

  # show what would be processed without encoding anything
  pics2video inspect -i ./pics`,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render slideshow videos from an image directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := configFromFlags(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		system.InitResourceLimits()

		// the original workflow keeps the track next to the photos
		if cfg.AudioPath == "" {
			if latest, err := system.FindLatestAudio(cfg.InputDir); err == nil {
				cfg.AudioPath = latest
				fmt.Printf("[*] using audio: %s\n", cfg.AudioPath)
			}
		}

		src, err := source.NewImageSource(cfg.InputDir, cfg.Extensions)
		if err != nil {
			return err
		}
		defer src.Close()

		if cfg.VideoEncoder == "" {
			cfg.VideoEncoder = system.BestH264Encoder()
		}
		if cfg.VideoEncoder != "libx264" {
			fmt.Printf("[*] hardware encoder: %s\n", cfg.VideoEncoder)
		}
		if cfg.Quality == 0 {
			cfg.Quality = system.DefaultQuality(cfg.VideoEncoder)
		}

		enc := &video.FFmpegEncoder{Codec: cfg.VideoEncoder, Quality: cfg.Quality}
		results, err := engine.New(cfg, src, enc).Run(cmd.Context())
		if err != nil {
			return err
		}

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d batches failed", failed, len(results))
		}
		return nil
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List discovered images and the batch layout without encoding",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := configFromFlags(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		src, err := source.NewImageSource(cfg.InputDir, cfg.Extensions)
		if err != nil {
			return err
		}
		defer src.Close()

		paths := src.Paths()
		fmt.Printf("[*] %s: %d images\n", cfg.InputDir, len(paths))
		for i, p := range paths {
			w, h, err := src.Dimensions(i)
			if err != nil {
				fmt.Printf("  %s  (unreadable: %v)\n", p, err)
				continue
			}
			fmt.Printf("  %s  %dx%d\n", p, w, h)
		}

		batches := source.Batches(paths, cfg.BatchSize, cfg.MaxVideos)
		for i, b := range batches {
			fmt.Printf("[*] batch %d: %d images, %.1fs video\n",
				i+1, len(b), float64(len(b))*cfg.SegmentDuration)
		}
		if len(batches) == 0 {
			fmt.Println("[*] nothing to render")
		}

		if cfg.AudioPath != "" {
			dur, err := video.ProbeAudio(cfg.AudioPath)
			if err != nil {
				return err
			}
			fmt.Printf("[*] audio: %s (%.1fs)\n", cfg.AudioPath, dur)
		}
		return nil
	},
}

// configFromFlags builds the run config: defaults, then the config file if
// given, then any flag the user set explicitly.
func configFromFlags(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("input") || cfg.InputDir == "" {
		cfg.InputDir, _ = flags.GetString("input")
	}
	if flags.Changed("output") {
		cfg.OutputDir, _ = flags.GetString("output")
	}
	if flags.Changed("name-prefix") {
		cfg.NamePrefix, _ = flags.GetString("name-prefix")
	}
	if flags.Changed("audio") {
		cfg.AudioPath, _ = flags.GetString("audio")
	}
	if flags.Changed("segment-duration") {
		cfg.SegmentDuration, _ = flags.GetFloat64("segment-duration")
	}
	if flags.Changed("zoom-start") {
		cfg.ZoomStart, _ = flags.GetFloat64("zoom-start")
	}
	if flags.Changed("zoom-end") {
		cfg.ZoomEnd, _ = flags.GetFloat64("zoom-end")
	}
	if flags.Changed("width") {
		cfg.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		cfg.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("fps") {
		cfg.FPS, _ = flags.GetInt("fps")
	}
	if flags.Changed("batch-size") {
		cfg.BatchSize, _ = flags.GetInt("batch-size")
	}
	if flags.Changed("max-videos") {
		cfg.MaxVideos, _ = flags.GetInt("max-videos")
	}
	if flags.Changed("quality") {
		cfg.Quality, _ = flags.GetInt("quality")
	}
	if flags.Changed("qr-link") {
		cfg.QRLink, _ = flags.GetString("qr-link")
	}
	if flags.Changed("stats") {
		cfg.ShowStats, _ = flags.GetBool("stats")
	}

	if preset, _ := flags.GetString("preset"); preset != "" {
		switch preset {
		case "16:9":
			cfg.Width, cfg.Height = 1280, 720
		case "9:16":
			cfg.Width, cfg.Height = 720, 1280
		case "4:5":
			cfg.Width, cfg.Height = 1080, 1350
		default:
			return nil, fmt.Errorf("unknown preset %q (expected 16:9, 9:16 or 4:5)", preset)
		}
	}

	return cfg, nil
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "YAML config file (flags override it)")
	cmd.Flags().StringP("input", "i", "", "Directory with the source images")
	cmd.Flags().StringP("audio", "a", "", "Background audio file (default: newest audio file in the image directory)")
	cmd.Flags().Float64P("segment-duration", "d", 2.0, "Seconds each image is shown")
	cmd.Flags().Int("batch-size", 10, "Images per output video")
	cmd.Flags().Int("max-videos", 0, "Stop after this many videos (0 = no limit)")
	cmd.Flags().String("preset", "", "Aspect preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
}

func init() {
	addCommonFlags(renderCmd)
	renderCmd.Flags().StringP("output", "o", "output", "Output directory")
	renderCmd.Flags().String("name-prefix", "output_video", "Output filename prefix")
	renderCmd.Flags().Float64("zoom-start", 1.0, "Zoom factor at the start of each clip")
	renderCmd.Flags().Float64("zoom-end", 1.2, "Zoom factor at the end of each clip")
	renderCmd.Flags().Int("width", 1280, "Output width")
	renderCmd.Flags().Int("height", 720, "Output height")
	renderCmd.Flags().Int("fps", 24, "Output frame rate")
	renderCmd.Flags().Int("quality", 0, "Video quality (0 = auto; x264/nvenc: CRF, videotoolbox: bitrate = q*100kbit/s)")
	renderCmd.Flags().String("qr-link", "", "Append an outro card with a QR code for this link")
	renderCmd.Flags().Bool("stats", false, "Print a run report when finished")
	renderCmd.MarkFlagRequired("input")

	addCommonFlags(inspectCmd)
	inspectCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(inspectCmd)
}

func main() {
	log.SetFlags(log.LstdFlags)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
