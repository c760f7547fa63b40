package summoner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"nq2jld/internal/common"
	"nq2jld/internal/config"
	"nq2jld/internal/jsonld"
	"nq2jld/internal/millers"
	"nq2jld/internal/millers/graph"
	"nq2jld/internal/minioWrapper"
	"nq2jld/internal/summoner/acquire"
	"nq2jld/internal/triples"

	"github.com/piprate/json-gold/ld"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Result describes one stored document
type Result struct {
	Source   string
	Location string
	Nodes    int
	Duration time.Duration
}

// Converter holds what every source conversion shares
type Converter struct {
	Convert config.Convert
	Proc    *ld.JsonLdProcessor
	Options *ld.JsonLdOptions
}

// NewConverter reads the convert section and sets up json-gold
func NewConverter(v1 *viper.Viper) (Converter, error) {
	convertCfg, err := config.ReadConvertConfig(v1)
	if err != nil {
		return Converter{}, err
	}
	proc, options, err := common.JLDProc(v1)
	if err != nil {
		return Converter{}, err
	}
	return Converter{Convert: convertCfg, Proc: proc, Options: options}, nil
}

// Run converts the bytes of one input and renders them. The returned count is
// the number of nodes before any select.
func (c Converter) Run(in io.Reader, format string, render millers.RenderOptions) ([]byte, int, error) {
	opts, err := c.Convert.Options()
	if err != nil {
		return nil, 0, err
	}
	ts, err := acquire.NewTripleSource(in, format, c.Proc, c.Options)
	if err != nil {
		return nil, 0, err
	}
	rec := triples.NewRecorder(ts)

	doc, err := jsonld.Convert(rec, opts...)
	if err != nil {
		return nil, 0, err
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, 0, err
	}

	if c.Convert.Verify {
		if err := common.VerifyRoundTrip(rec.Dataset(), out, c.Proc, c.Options); err != nil {
			log.Warn("round trip verification failed: ", err)
		} else {
			log.Debug("round trip verified for ", len(doc), " nodes")
		}
	}

	rendered, err := millers.Render(out, render)
	if err != nil {
		return nil, 0, err
	}
	return rendered, len(doc), nil
}

// NewSink picks a directory when outputdir is set, otherwise the minio bucket
func NewSink(convertCfg config.Convert, mc *minioWrapper.MinioClientWrapper) (graph.Sink, error) {
	if convertCfg.OutputDir != "" {
		return graph.DirSink{Dir: convertCfg.OutputDir}, nil
	}
	if mc == nil {
		return nil, errors.New("no output directory set and no minio connection")
	}
	return graph.MinioSink{Bucket: mc.DefaultBucket, Client: mc.Client}, nil
}

// Summon converts every active source in order and stores the results.
// It stops at the first source that fails.
func Summon(ctx context.Context, v1 *viper.Viper, conv Converter, opener acquire.Opener, sink graph.Sink) ([]Result, error) {
	start := time.Now()
	log.Info("Summoner start time: ", start) // Log the time at start for the record

	sources, err := config.GetActiveSources(v1)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, config.ErrNoSources
	}

	baseDir := ""
	if used := v1.ConfigFileUsed(); used != "" {
		baseDir = filepath.Dir(used)
	}

	var results []Result
	for _, s := range sources {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		s = resolveFileSource(s, baseDir)
		r, err := summonSource(ctx, conv, opener, sink, s)
		if err != nil {
			log.Error("Source ", s.Name, " failed: ", err)
			return results, fmt.Errorf("source %s: %w", s.Name, err)
		}
		results = append(results, r)
	}

	log.Info("Summoner run time: ", time.Since(start).Minutes())
	return results, nil
}

// file sources with relative paths are relative to the config file
func resolveFileSource(s config.Source, baseDir string) config.Source {
	if baseDir == "" || s.URL == "-" || s.URL == "" || filepath.IsAbs(s.URL) {
		return s
	}
	if s.SourceType == config.FileSource || s.SourceType == "" {
		s.URL = filepath.Join(baseDir, s.URL)
	}
	return s
}

func summonSource(ctx context.Context, conv Converter, opener acquire.Opener, sink graph.Sink, s config.Source) (Result, error) {
	st := time.Now()

	in, err := opener.Open(ctx, s)
	if err != nil {
		return Result{}, err
	}
	defer in.Body.Close()

	rendered, nodes, err := conv.Run(in.Body, in.Format, millers.RenderOptionsFor(conv.Convert, s))
	if err != nil {
		return Result{}, err
	}

	objectName, err := graph.ObjectName(conv.Convert.OutputKey, s.Name, rendered)
	if err != nil {
		return Result{}, err
	}
	usermeta := map[string]string{
		"source": s.Name,
		"url":    s.URL,
		"sha1":   common.GetSHA(rendered),
	}
	location, err := sink.Store(ctx, objectName, rendered, usermeta)
	if err != nil {
		return Result{}, err
	}

	r := Result{Source: s.Name, Location: location, Nodes: nodes, Duration: time.Since(st)}
	log.WithFields(log.Fields{"source": s.Name, "format": in.Format, "nodes": nodes, "location": location}).
		Info("Converted in ", r.Duration)
	return r, nil
}
