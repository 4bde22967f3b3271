package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"invoice-reconciler/core/config"
	"invoice-reconciler/core/database"
	"invoice-reconciler/core/logger"
	"invoice-reconciler/core/reconcile"
	"invoice-reconciler/core/storage"
	docstore "invoice-reconciler/feature/documents"
	"invoice-reconciler/feature/mismatch"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

var yesConfirm bool

// session bundles what every command needs before doing real work.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
}

func loadSession() (*session, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &session{cfg: cfg, logger: logg}, nil
}

// repository connects to the mismatch store.
func (s *session) repository() (*mismatch.Repository, error) {
	db, err := database.Connect(s.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}
	return mismatch.NewRepository(db), nil
}

// store connects to object storage and makes sure the bucket exists.
func (s *session) store(ctx context.Context) (*docstore.Store, error) {
	client, err := storage.NewClient(s.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if err := storage.EnsureBucket(ctx, client, s.cfg.Storage.Bucket, s.cfg.Storage.Region); err != nil {
		return nil, err
	}

	rc := s.cfg.Reconcile
	return docstore.NewStore(client, s.cfg.Storage.Bucket, rc.DocumentPrefix, rc.ReportPrefix, rc.CacheTTL()), nil
}

func (s *session) validator(repo *mismatch.Repository) *reconcile.Validator {
	return reconcile.NewValidator(repo, s.logger, s.cfg.Reconcile.User)
}

// writeOutput prints v as indented JSON or as YAML.
func writeOutput(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "", formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		data, err := yaml.MarshalWithOptions(v, yaml.UseJSONMarshaler())
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

func confirmDestructiveAction(in io.Reader, out io.Writer, action string) bool {
	if yesConfirm {
		fmt.Fprintln(out, "Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprintf(out, "Type 'yes' to confirm %s: ", action)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
