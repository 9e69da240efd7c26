package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/xeptore/albumfetch/catalog"
	"github.com/xeptore/albumfetch/config"
	"github.com/xeptore/albumfetch/constants"
	"github.com/xeptore/albumfetch/log"
	"github.com/xeptore/albumfetch/output"
	"github.com/xeptore/albumfetch/prompt"
	"github.com/xeptore/albumfetch/result"
)

const (
	exitNoTTY           exitCodeError = 1
	exitUsage           exitCodeError = 2
	exitRequestFailed   exitCodeError = 3
	exitTransportFailed exitCodeError = 4
	exitDecodeFailed    exitCodeError = 5
)

func main() {
	logger := log.NewDefault()

	if err := newApp().Run(context.Background(), os.Args); nil != err {
		if errors.Is(err, context.Canceled) {
			logger.Trace().Msg("Application was canceled")
			os.Exit(1)
		}

		var exitCode exitCodeError
		if errors.As(err, &exitCode) {
			os.Exit(int(exitCode))
		}

		logger.Error().Err(err).Msg("Application exited with error")
		os.Exit(10)
	}
}

func newApp() *cli.Command {
	tokenFlag := func() cli.Flag {
		//nolint:exhaustruct
		return &cli.StringFlag{
			Name:  "token",
			Usage: "Bearer access token. Defaults to " + config.TokenEnvVar,
		}
	}
	outputFlag := func() cli.Flag {
		//nolint:exhaustruct
		return &cli.StringFlag{
			Name:  "output",
			Usage: "Output format: auto, json, table",
			Value: string(output.FormatAuto),
		}
	}

	//nolint:exhaustruct
	return &cli.Command{
		Name:    "albumfetch",
		Version: constants.Version,
		Metadata: map[string]any{
			"compiled_at": constants.CompileTime,
		},
		Suggest:                    true,
		Usage:                      "Music catalog album metadata lookup",
		EnableShellCompletion:      true,
		ShellCompletionCommandName: "shell-completion",
		Flags: []cli.Flag{
			//nolint:exhaustruct
			&cli.StringFlag{
				Name:     "config",
				Usage:    "Config file path",
				Required: false,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "album",
				Usage: "Album commands",
				Commands: []*cli.Command{
					//nolint:exhaustruct
					{
						Name:      "get",
						Usage:     "Fetch album metadata by id",
						ArgsUsage: "ID...",
						Flags:     []cli.Flag{tokenFlag(), outputFlag()},
						Action:    albumGet,
					},
				},
			},
			{
				Name:  "playlists",
				Usage: "Playlist commands",
				Commands: []*cli.Command{
					//nolint:exhaustruct
					{
						Name:   "list",
						Usage:  "List the first page of the token owner's playlists",
						Flags:  []cli.Flag{tokenFlag(), outputFlag()},
						Action: playlistsList,
					},
				},
			},
		},
	}
}

type exitCodeError int

func (e exitCodeError) Error() string {
	return "error with exit code: " + strconv.Itoa(int(e))
}

// session is what every command needs before talking to the catalog.
type session struct {
	logger zerolog.Logger
	conf   *config.Config
	format output.Format
	stdout io.Writer
}

func newSession(cmd *cli.Command) (*session, error) {
	logger := log.NewDefault()

	if err := godotenv.Load(); nil != err {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load .env file: %v", err)
		}
		logger.Debug().Msg(".env file was not found")
	} else {
		logger.Debug().Msg(".env file was loaded")
	}

	conf, err := config.Load(cmd.String("config"))
	if nil != err {
		return nil, fmt.Errorf("load config: %v", err)
	}

	logger = log.FromConfig(conf.Log)

	logger.Debug().Dict("config", conf.ToDict()).Msg("Config loaded")

	format, err := output.ParseFormat(cmd.String("output"))
	if nil != err {
		logger.Error().Err(err).Msg("Invalid output format")
		return nil, exitUsage
	}

	stdout := cmd.Root().Writer

	return &session{
		logger: logger,
		conf:   conf,
		format: output.ResolveWriter(format, stdout),
		stdout: stdout,
	}, nil
}

// fetcher resolves the access token, --token first, then the configured
// one, then an interactive prompt, and builds the catalog fetcher.
func (s *session) fetcher(cmd *cli.Command) (*catalog.Fetcher, string, error) {
	token := lo.CoalesceOrEmpty(cmd.String("token"), s.conf.Catalog.Token)
	if token == "" {
		var err error
		token, err = promptToken(cmd.Root())
		if nil != err {
			if errors.Is(err, syscall.ENOTTY) {
				s.logger.Error().Msg("No access token given and no TTY to ask for one. Set " + config.TokenEnvVar + " or pass --token.")
				return nil, "", exitNoTTY
			}

			return nil, "", fmt.Errorf("prompt for access token: %w", err)
		}
	}

	//nolint:exhaustruct
	client := &http.Client{
		Timeout: s.conf.Catalog.Timeout.Duration,
	}
	fetcher, err := catalog.NewFetcher(client, s.conf.Catalog.BaseURL)
	if nil != err {
		return nil, "", fmt.Errorf("create catalog fetcher: %v", err)
	}

	return fetcher, token, nil
}

func promptToken(root *cli.Command) (string, error) {
	stdin, inOK := root.Reader.(terminal.FileReader)
	stdout, outOK := root.Writer.(terminal.FileWriter)
	if !inOK || !outOK {
		return "", syscall.ENOTTY
	}

	return prompt.Token(stdin, stdout)
}

func albumGet(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := newSession(cmd)
	if nil != err {
		return err
	}

	ids := lo.Uniq(lo.Compact(cmd.Args().Slice()))
	if len(ids) == 0 {
		s.logger.Error().Msg("At least one album id is required")
		return exitUsage
	}

	fetcher, token, err := s.fetcher(cmd)
	if nil != err {
		return err
	}

	results := fetchAlbums(ctx, s.logger, fetcher, token, ids, s.conf.Catalog.Concurrency)

	if albums := result.Values(results); len(albums) > 0 {
		if err := output.Write(s.stdout, s.format, albums); nil != err {
			return fmt.Errorf("write albums: %v", err)
		}
	}

	return exitCodeFor(results)
}

func playlistsList(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := newSession(cmd)
	if nil != err {
		return err
	}

	if cmd.Args().Present() {
		s.logger.Error().Msg("playlists list takes no arguments")
		return exitUsage
	}

	fetcher, token, err := s.fetcher(cmd)
	if nil != err {
		return err
	}

	playlists, err := fetcher.FetchPlaylists(ctx, token)
	if nil != err {
		logFetchError(s.logger, "playlists", err)
		if code, ok := exitCodeOf(err); ok {
			return code
		}

		return fmt.Errorf("fetch playlists: %w", err)
	}

	s.logger.Debug().Int("body_size", len(playlists.Raw)).Int("total", playlists.Total()).Msg("Playlists fetched")

	if err := output.WritePlaylists(s.stdout, s.format, playlists); nil != err {
		return fmt.Errorf("write playlists: %v", err)
	}

	return nil
}

// fetchAlbums issues one independent lookup per id. A failed lookup does not
// cancel the others; results are in ids order.
func fetchAlbums(
	ctx context.Context,
	logger zerolog.Logger,
	fetcher *catalog.Fetcher,
	token string,
	ids []string,
	concurrency int,
) []result.Of[catalog.Album] {
	var (
		wg      errgroup.Group
		results = make([]result.Of[catalog.Album], len(ids))
	)

	wg.SetLimit(concurrency)
	for i, id := range ids {
		logger := logger.With().Str("album_id", id).Logger()

		wg.Go(func() error {
			album, err := fetcher.FetchAlbum(ctx, token, id)
			if nil != err {
				logFetchError(logger, "album", err)
				results[i] = result.Err[catalog.Album](err)

				return nil
			}

			logger.Debug().Int("body_size", len(album.Raw)).Msg("Album fetched")
			results[i] = result.Ok(album)

			return nil
		})
	}
	_ = wg.Wait()

	return results
}

func logFetchError(logger zerolog.Logger, resource string, err error) {
	var (
		transportErr *catalog.TransportError
		decodeErr    *catalog.DecodeError
	)

	switch {
	case errors.Is(err, catalog.ErrRequestFailed), errors.Is(err, catalog.ErrPlaylistsRequestFailed):
		logger.Error().Err(err).Msg("Catalog rejected " + resource + " request")
	case errors.As(err, &transportErr):
		logger.Error().Err(err).Msg("Failed to send " + resource + " request")
	case errors.As(err, &decodeErr):
		logger.Error().Err(err).Msg("Failed to decode " + resource + " response")
	default:
		logger.Error().Err(err).Msg("Failed to fetch " + resource)
	}
}

func exitCodeOf(err error) (exitCodeError, bool) {
	var (
		transportErr *catalog.TransportError
		decodeErr    *catalog.DecodeError
	)

	switch {
	case errors.As(err, &transportErr):
		return exitTransportFailed, true
	case errors.As(err, &decodeErr):
		return exitDecodeFailed, true
	case errors.Is(err, catalog.ErrRequestFailed), errors.Is(err, catalog.ErrPlaylistsRequestFailed):
		return exitRequestFailed, true
	default:
		return 0, false
	}
}

func exitCodeFor(results []result.Of[catalog.Album]) error {
	var code exitCodeError
	for _, r := range results {
		err := r.Err()
		if nil == err {
			continue
		}

		c, ok := exitCodeOf(err)
		if !ok {
			return fmt.Errorf("fetch album: %w", err)
		}
		code = max(code, c)
	}

	if code == 0 {
		return nil
	}

	return code
}
