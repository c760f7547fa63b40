package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nq2jld/internal/config"
	"nq2jld/internal/minioWrapper"
	"nq2jld/internal/summoner"
	"nq2jld/internal/summoner/acquire"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Nq2jldClient struct {
	Address      string // address for minio
	Port         string // port for minio
	Bucket       string // minio bucket to put data
	Source       string // source to convert from the config
	Config       string // full path to config
	SecretKey    string // secret key for minio
	AccessKey    string // access key for minio
	SSL          bool   // use SSL for minio
	SetupBuckets bool   // setup buckets before converting
	Rude         bool   // ignore robots.txt
	OutDir       string // write to a directory instead of minio
}

// apply cli overrides to the minio section
func (cli *Nq2jldClient) overrideMinio(v1 *viper.Viper) {
	minioConfig := v1.GetStringMap("minio")
	set := func(key string, value interface{}) {
		minioConfig[key] = value
	}
	if cli.Address != "" {
		set("address", cli.Address)
	}
	if cli.Port != "" {
		set("port", cli.Port)
	}
	if cli.Bucket != "" {
		set("bucket", cli.Bucket)
	}
	if cli.AccessKey != "" {
		set("accesskey", cli.AccessKey)
	}
	if cli.SecretKey != "" {
		set("secretkey", cli.SecretKey)
	}
	if cli.SSL {
		set("ssl", true)
	}
	v1.Set("minio", minioConfig)
}

func (cli *Nq2jldClient) connect(ctx context.Context, v1 *viper.Viper) (*minioWrapper.MinioClientWrapper, error) {
	minioCfg, err := config.ReadMinioConfig(v1.Sub("minio"))
	if err != nil {
		return nil, err
	}
	mc, err := minioWrapper.NewMinioConnection(minioCfg)
	if err != nil {
		return nil, fmt.Errorf("error creating minio client: %w", err)
	}

	// If requested, set up the buckets
	if cli.SetupBuckets {
		log.Info("Setting up buckets inside minio")
		if err := mc.SetupBucket(ctx); err != nil {
			log.Error("error making buckets for setup call ", err)
			return nil, err
		}
	}

	if err := mc.PreflightCheck(ctx); err != nil {
		return nil, err
	}
	return &mc, nil
}

// Entrypoint for the root command. Cli args take priority over config
func (cli *Nq2jldClient) Run(ctx context.Context) error {
	v1, err := config.ReadConfigPath(cli.Config)
	if err != nil {
		return fmt.Errorf("error when reading config: %w", err)
	}

	if cli.Source != "" {
		if v1, err = config.PruneSources(v1, []string{cli.Source}); err != nil {
			return fmt.Errorf("did your --source VALUE match a sources.name value in %s: %w", cli.Config, err)
		}
	} else if cli.Rude {
		return errors.New("rude is only valid when --source is also specified")
	}
	cli.overrideMinio(v1)

	conv, err := summoner.NewConverter(v1)
	if err != nil {
		return err
	}
	if cli.OutDir != "" {
		conv.Convert.OutputDir = cli.OutDir
	}

	sources, err := config.GetActiveSources(v1)
	if err != nil {
		return err
	}

	// minio is only needed for s3 inputs or when there is no output directory
	var mc *minioWrapper.MinioClientWrapper
	if conv.Convert.OutputDir == "" || len(config.FilterSourcesByType(sources, config.S3Source)) > 0 {
		if mc, err = cli.connect(ctx, v1); err != nil {
			return err
		}
	}

	sink, err := summoner.NewSink(conv.Convert, mc)
	if err != nil {
		return err
	}

	results, err := summoner.Summon(ctx, v1, conv, acquire.Opener{Minio: mc, Rude: cli.Rude}, sink)
	if err != nil {
		return err
	}
	log.Info("Converted ", len(results), " sources")
	return nil
}

func setLogLevel(logLevel string) error {
	switch logLevel {
	case "DEBUG":
		log.SetLevel(log.DebugLevel)
	case "INFO":
		log.SetLevel(log.InfoLevel)
	case "WARN":
		log.SetLevel(log.WarnLevel)
	case "ERROR":
		log.SetLevel(log.ErrorLevel)
	case "FATAL":
		log.SetLevel(log.FatalLevel)
	default:
		return fmt.Errorf("invalid log level: %s", logLevel)
	}
	log.SetFormatter(&log.JSONFormatter{})
	return nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:              "nq2jld",
	TraverseChildren: true,
	Short:            "Convert RDF statements from N-Quads or JSON-LD sources into JSON-LD node objects.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel, _ := cmd.Flags().GetString("log-level")
		if err := setLogLevel(logLevel); err != nil {
			log.Fatal(err)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {

		cliArgs := &Nq2jldClient{}
		cliArgs.Address, _ = cmd.Flags().GetString("address")
		cliArgs.Port, _ = cmd.Flags().GetString("port")
		cliArgs.Bucket, _ = cmd.Flags().GetString("bucket")
		cliArgs.Source, _ = cmd.Flags().GetString("source")
		cliArgs.Config, _ = cmd.Flags().GetString("cfg")
		cliArgs.SecretKey, _ = cmd.Flags().GetString("secretkey")
		cliArgs.AccessKey, _ = cmd.Flags().GetString("accesskey")
		cliArgs.SSL, _ = cmd.Flags().GetBool("ssl")
		cliArgs.SetupBuckets, _ = cmd.Flags().GetBool("setup")
		cliArgs.Rude, _ = cmd.Flags().GetBool("rude")
		cliArgs.OutDir, _ = cmd.Flags().GetString("outdir")

		if cliArgs.Config == "" {
			log.Fatal("--cfg is required")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := cliArgs.Run(ctx); err != nil {
			log.Fatal(err)
		}
	},
}

// Adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	akey := os.Getenv("MINIO_ACCESS_KEY")
	skey := os.Getenv("MINIO_SECRET_KEY")
	if skey != "" || akey != "" {
		fmt.Println(" MINIO_ACCESS_KEY or MINIO_SECRET_KEY are set.")
		fmt.Println("if this is not intentional, please unset")
	}
	// Persistent flags defined here will be global for the entire application.
	rootCmd.PersistentFlags().String("cfg", "", "full path to config file")
	rootCmd.PersistentFlags().String("source", "", "source name")
	rootCmd.PersistentFlags().String("address", "", "FQDN for server")
	rootCmd.PersistentFlags().String("port", "", "Port for minio server")
	rootCmd.PersistentFlags().String("bucket", "", "The bucket in which to place converted objects")
	rootCmd.PersistentFlags().String("accesskey", "", "Minio access key")
	rootCmd.PersistentFlags().String("secretkey", "", "Minio secret key")
	rootCmd.PersistentFlags().Bool("ssl", false, "Use SSL when connecting to minio")
	rootCmd.PersistentFlags().String("outdir", "", "Write converted documents to this directory instead of minio")
	rootCmd.PersistentFlags().Bool("rude", false, "Ignore robots.txt when connecting to source")
	rootCmd.PersistentFlags().Bool("setup", false, "Setup buckets in minio")
	rootCmd.PersistentFlags().String("log-level", "INFO", "the log level to use for the nq2jld logger")
}
