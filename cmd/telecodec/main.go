// Command telecodec encodes container telemetry records for a
// size-constrained uplink: encode one record from JSON (or a generated
// sample) with a chosen scheme, save the .bin/.hex artifacts, verify
// embedded-encoder parity, or pre-generate a pool of in-budget payloads.
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/seatrack/telecodec"
)

func main() {
	var (
		jsonPath   = flag.String("json", "", "path to a JSON object with the 20 required fields")
		generate   = flag.Bool("generate", false, "generate one sample record instead of reading JSON")
		seed       = flag.Uint64("seed", 1, "generator seed for -generate and -pool")
		schemeName = flag.String("scheme", "", "encoding scheme: map, schema or struct")
		limit      = flag.Int("limit", 0, "payload size ceiling in bytes (0: from config, default 158)")
		preview    = flag.Bool("preview", false, "print encoded size and a hex preview")
		save       = flag.Bool("save", false, "save .bin and .hex artifacts")
		out        = flag.String("out", "", "artifact output directory")
		parity     = flag.Bool("parity", false, "check the record against the embedded msgpack encoder")
		poolSize   = flag.Int("pool", 0, "pre-generate this many in-budget payloads and report stats")
		configPath = flag.String("config", "", "YAML configuration file")
	)
	flag.Parse()
	log.SetFlags(0)

	cfg := telecodec.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = telecodec.LoadConfig(*configPath); err != nil {
			fatalf("load config: %v", err)
		}
	}
	if *schemeName != "" {
		cfg.Scheme = *schemeName
	}
	if *limit != 0 {
		cfg.MaxPayloadSize = *limit
	}
	if *out != "" {
		cfg.OutDir = *out
	}
	if *poolSize != 0 {
		cfg.PoolSize = *poolSize
	}

	scheme, grammar, err := telecodec.ParseScheme(cfg.Scheme)
	if err != nil {
		fatalf("%v", err)
	}
	// The self-describing map targets unconstrained HTTP ingest and does not
	// fit the satellite budget; only an explicit limit binds it.
	if scheme == telecodec.SelfDescribingMap && *limit == 0 && *configPath == "" {
		cfg.MaxPayloadSize = telecodec.NoLimit
	}

	if *poolSize != 0 {
		runPool(cfg, scheme, grammar, *seed)
		return
	}

	rec, err := loadRecord(*jsonPath, *generate, *seed)
	if err != nil {
		fatalf("%v", err)
	}

	if *parity {
		reference := func(r *telecodec.Record) ([]byte, error) {
			return telecodec.EncodeMap(r, &telecodec.MsgPack), nil
		}
		embedded := func(r *telecodec.Record) ([]byte, error) {
			return telecodec.EncodeEmbedded(r), nil
		}
		if err := telecodec.CheckParity(&rec, reference, embedded); err != nil {
			fatalf("parity: %v", err)
		}
		infof("parity OK: embedded encoder matches reference byte-for-byte")
	}

	raw, err := telecodec.Encode(&rec, scheme, grammar, cfg.MaxPayloadSize)
	if err != nil {
		var tooLarge *telecodec.PayloadTooLargeError
		if errors.As(err, &tooLarge) {
			fatalf("%v; reduce precision or fields and re-encode", err)
		}
		fatalf("encode: %v", err)
	}

	if *preview {
		hexPayload := telecodec.ToHex(raw)
		infof("scheme %s: %d bytes (limit %d)", scheme, len(raw), cfg.MaxPayloadSize)
		if len(hexPayload) > 64 {
			infof("hex (first 64): %s...", hexPayload[:64])
		} else {
			infof("hex: %s", hexPayload)
		}
	}

	if *save {
		binPath, hexPath, err := telecodec.SaveArtifacts(cfg.OutDir, raw)
		if err != nil {
			fatalf("save artifacts: %v", err)
		}
		infof("saved %s and %s", binPath, hexPath)
	}
}

func loadRecord(jsonPath string, generate bool, seed uint64) (telecodec.Record, error) {
	switch {
	case generate:
		return telecodec.NewGenerator(seed).Record(), nil
	case jsonPath != "":
		data, err := os.ReadFile(jsonPath)
		if err != nil {
			return telecodec.Record{}, err
		}
		return telecodec.FromJSON(data)
	default:
		return telecodec.Record{}, errors.New("one of -json or -generate is required")
	}
}

func runPool(cfg telecodec.Config, scheme telecodec.Scheme, g *telecodec.Grammar, seed uint64) {
	infof("pre-generating %d %s payloads under %d bytes...", cfg.PoolSize, scheme, cfg.MaxPayloadSize)
	pool, err := telecodec.GeneratePool(cfg.PoolSize, scheme, g, cfg.MaxPayloadSize, cfg.Workers, seed)
	if err != nil {
		fatalf("pool: %v", err)
	}
	s := pool.Stats()
	infof("generated %d payloads, rejected %d oversized", s.Count, s.Rejected)
	infof("size avg %.1fB, min %dB, max %dB", s.AvgSize, s.MinSize, s.MaxSize)
}

func infof(format string, args ...any) {
	log.Printf("[INFO] "+format, args...)
}

func fatalf(format string, args ...any) {
	log.Printf("[ERROR] "+format, args...)
	os.Exit(1)
}
