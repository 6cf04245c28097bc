package main

import (
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-ml/revad/autodiff"
	"github.com/born-ml/revad/internal/serialization"
	"github.com/born-ml/revad/optim"
	"github.com/born-ml/revad/tensor"
)

var configPath string

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit Y ≈ W·X on random data with gradient descent",
	Long: `Generates random X and Y of shape rows×cols, starts from W = 0 and
minimizes sum((W·X - Y)²) with gradient descent, printing the error at
every iteration and the learned W.`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	trainCmd.Flags().Int("iters", 10, "Number of gradient descent iterations")
	trainCmd.Flags().Float64("lr", 0.01, "Learning rate")
	trainCmd.Flags().Float64("momentum", 0, "Momentum factor")
	trainCmd.Flags().Int("rows", 2, "Rows of X and Y")
	trainCmd.Flags().Int("cols", 4, "Columns of X and Y")
	trainCmd.Flags().Int64("seed", 1, "Random seed for the training data")
	trainCmd.Flags().StringP("out", "o", "", "Save the learned W to a SafeTensors file")
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := resolveTrainConfig(cmd)
	if err != nil {
		return err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return train(cmd.OutOrStdout(), cfg, logger)
}

// resolveTrainConfig layers explicitly set flags over the config file.
func resolveTrainConfig(cmd *cobra.Command) (TrainConfig, error) {
	cfg := DefaultTrainConfig()
	if configPath != "" {
		var err error
		if cfg, err = LoadTrainConfig(configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("iters") {
		cfg.Iterations, _ = flags.GetInt("iters")
	}
	if flags.Changed("lr") {
		cfg.LR, _ = flags.GetFloat64("lr")
	}
	if flags.Changed("momentum") {
		cfg.Momentum, _ = flags.GetFloat64("momentum")
	}
	if flags.Changed("rows") {
		cfg.Rows, _ = flags.GetInt("rows")
	}
	if flags.Changed("cols") {
		cfg.Cols, _ = flags.GetInt("cols")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("out") {
		cfg.Output, _ = flags.GetString("out")
	}
	return cfg, cfg.Validate()
}

func train(out io.Writer, cfg TrainConfig, log *zap.Logger) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	x := tensor.Randn(tensor.Shape{cfg.Rows, cfg.Cols}, rng)
	y := tensor.Randn(tensor.Shape{cfg.Rows, cfg.Cols}, rng)
	fmt.Fprintf(out, "X, Y\n%v\n%v\n", x, y)

	w := tensor.FromDense(tensor.Zeros(tensor.Shape{cfg.Rows, cfg.Rows}))
	fmt.Fprintf(out, "initial W\n%v\n", w)
	params := []optim.Parameter{w}

	errorFn := func(p []optim.Parameter) *autodiff.Variable {
		return p[0].(*tensor.Array).MatMul(x).Sub(y).Pow(tensor.Scalar(2)).Sum()
	}

	log.Debug("training",
		zap.Int("rows", cfg.Rows),
		zap.Int("cols", cfg.Cols),
		zap.Int("iterations", cfg.Iterations),
		zap.Float64("lr", cfg.LR),
		zap.Float64("momentum", cfg.Momentum))

	errs, err := optim.GradientDescent(params, errorFn, optim.DescentConfig{
		Iterations: cfg.Iterations,
		LR:         cfg.LR,
		Momentum:   cfg.Momentum,
		Logger:     log,
	})
	if err != nil {
		return fmt.Errorf("gradient descent: %w", err)
	}

	for i, e := range errs {
		fmt.Fprintf(out, "%d %v\n", i, e)
	}
	learned := params[0].(*tensor.Array)
	fmt.Fprintf(out, "learned W\n%v\n", learned)

	if cfg.Output != "" {
		meta := map[string]string{
			"iterations": strconv.Itoa(cfg.Iterations),
			"lr":         strconv.FormatFloat(cfg.LR, 'g', -1, 64),
			"seed":       strconv.FormatInt(cfg.Seed, 10),
		}
		weights := map[string]*tensor.Dense{"W": learned.Evaluate()}
		if err := serialization.SaveSafeTensors(cfg.Output, weights, meta); err != nil {
			return fmt.Errorf("save weights: %w", err)
		}
		log.Info("saved weights", zap.String("path", cfg.Output))
	}

	if len(errs) > 0 {
		first, last := errs[0].Evaluate(), errs[len(errs)-1].Evaluate()
		color.New(color.FgGreen).Fprintf(out, "error %.6g -> %.6g after %d iterations\n", first, last, len(errs))
	}
	return nil
}
