package main

import (
	"fmt"
	"os"

	"github.com/luanwie/cltfacil/internal/calculation"
	"github.com/luanwie/cltfacil/internal/compare"
	"github.com/luanwie/cltfacil/internal/config"
	"github.com/luanwie/cltfacil/internal/domain"
	"github.com/luanwie/cltfacil/internal/grossup"
	"github.com/luanwie/cltfacil/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "cltcalc",
	Short: "CLT Settlement Calculator",
	Long:  "Deterministic labor-settlement calculation engine: termination settlements, withholding schedules and night-shift differentials",
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [request-file]",
	Short: "Evaluate a calculation request against the active policy set",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		requestFile := args[0]
		tablesFile, _ := cmd.Flags().GetString("tables")

		parser := config.NewInputParser()
		policies, err := parser.LoadPolicySet(tablesFile)
		if err != nil {
			logger.Fatal("failed to load policy set",
				zap.String("file", tablesFile),
				zap.Error(err),
			)
		}

		request, err := parser.LoadRequest(requestFile)
		if err != nil {
			logger.Fatal("failed to load request",
				zap.String("file", requestFile),
				zap.Error(err),
			)
		}

		engine := calculation.NewEngine(policies)
		response, calcErr := engine.Calculate(request)
		if calcErr != nil {
			logger.Warn("request did not resolve",
				zap.String("kind", string(request.Kind)),
				zap.Error(calcErr),
			)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		if err := output.GenerateReport(response, outputFormat); err != nil {
			logger.Fatal("failed to render report", zap.Error(err))
		}
		if calcErr != nil {
			os.Exit(1)
		}
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [request-file]",
	Short: "Settle a termination request under every variant side by side",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		requestFile := args[0]
		tablesFile, _ := cmd.Flags().GetString("tables")

		parser := config.NewInputParser()
		policies, err := parser.LoadPolicySet(tablesFile)
		if err != nil {
			logger.Fatal("failed to load policy set",
				zap.String("file", tablesFile),
				zap.Error(err),
			)
		}

		request, err := parser.LoadRequest(requestFile)
		if err != nil {
			logger.Fatal("failed to load request",
				zap.String("file", requestFile),
				zap.Error(err),
			)
		}
		if request.Kind != domain.KindTermination || request.Termination == nil {
			logger.Fatal("compare requires a termination request",
				zap.String("kind", string(request.Kind)),
			)
		}

		compSet, err := compare.NewCompareEngine(policies).Compare(*request.Termination, nil)
		if err != nil {
			logger.Fatal("comparison failed", zap.Error(err))
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		switch outputFormat {
		case "table", "console":
			fmt.Print((&compare.TableFormatter{}).Format(compSet))
		case "json":
			out, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			if err != nil {
				logger.Fatal("failed to render report", zap.Error(err))
			}
			fmt.Println(out)
		case "csv":
			out, err := (&compare.CSVFormatter{}).Format(compSet)
			if err != nil {
				logger.Fatal("failed to render report", zap.Error(err))
			}
			fmt.Print(out)
		default:
			logger.Fatal("unsupported format", zap.String("format", outputFormat))
		}
	},
}

var grossupCmd = &cobra.Command{
	Use:   "grossup",
	Short: "Find the gross salary behind a target net amount",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		tablesFile, _ := cmd.Flags().GetString("tables")
		netStr, _ := cmd.Flags().GetString("net")
		dependents, _ := cmd.Flags().GetInt("dependents")
		alimonyStr, _ := cmd.Flags().GetString("alimony")
		simplified, _ := cmd.Flags().GetBool("simplified")

		targetNet, err := decimal.NewFromString(netStr)
		if err != nil {
			logger.Fatal("invalid --net value", zap.String("net", netStr), zap.Error(err))
		}
		alimony, err := decimal.NewFromString(alimonyStr)
		if err != nil {
			logger.Fatal("invalid --alimony value", zap.String("alimony", alimonyStr), zap.Error(err))
		}

		parser := config.NewInputParser()
		policies, err := parser.LoadPolicySet(tablesFile)
		if err != nil {
			logger.Fatal("failed to load policy set",
				zap.String("file", tablesFile),
				zap.Error(err),
			)
		}

		mode := grossup.ModeStandard
		if simplified {
			mode = grossup.ModeSimplified
		}
		result, err := grossup.NewDefaultSolver(policies).Solve(cmd.Context(), grossup.Request{
			TargetNet:  targetNet,
			Dependents: dependents,
			Alimony:    alimony,
			Mode:       mode,
		})
		if err != nil {
			logger.Fatal("gross-up did not resolve", zap.Error(err))
		}

		fmt.Printf("Gross salary:        %s\n", output.FormatCurrency(result.Gross))
		fmt.Printf("Social contribution: %s\n", output.FormatCurrency(result.Contribution))
		fmt.Printf("Income withholding:  %s\n", output.FormatCurrency(result.Withholding))
		fmt.Printf("Net salary:          %s\n", output.FormatCurrency(result.Net))
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [tables-file]",
	Short: "Validate a policy set file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tablesFile := args[0]

		parser := config.NewInputParser()
		if _, err := parser.LoadPolicySet(tablesFile); err != nil {
			logger.Fatal("policy set is invalid",
				zap.String("file", tablesFile),
				zap.Error(err),
			)
		}

		fmt.Printf("Policy set %s is valid\n", tablesFile)
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example [tables-file] [request-file]",
	Short: "Generate example policy set and request files",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		tablesFile, requestFile := args[0], args[1]

		parser := config.NewInputParser()
		if err := output.SaveYAML(parser.CreateExamplePolicySet(), tablesFile); err != nil {
			logger.Fatal("failed to write example policy set", zap.Error(err))
		}
		if err := output.SaveYAML(parser.CreateExampleRequest(), requestFile); err != nil {
			logger.Fatal("failed to write example request", zap.Error(err))
		}

		fmt.Printf("Example policy set saved to %s\n", tablesFile)
		fmt.Printf("Example request saved to %s\n", requestFile)
	},
}

func init() {
	calculateCmd.Flags().StringP("tables", "t", "data/policies_2025.yaml", "Policy set file for the active epoch")
	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")

	compareCmd.Flags().StringP("tables", "t", "data/policies_2025.yaml", "Policy set file for the active epoch")
	compareCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")

	grossupCmd.Flags().StringP("tables", "t", "data/policies_2025.yaml", "Policy set file for the active epoch")
	grossupCmd.Flags().StringP("net", "n", "", "Target net salary")
	grossupCmd.Flags().IntP("dependents", "d", 0, "Number of dependents")
	grossupCmd.Flags().StringP("alimony", "a", "0", "Judicial alimony amount")
	grossupCmd.Flags().BoolP("simplified", "s", false, "Use the simplified flat withholding deduction")
	grossupCmd.MarkFlagRequired("net")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(grossupCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exampleCmd)
}

func main() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		fmt.Println("failed to initiate logger")
		os.Exit(1)
	}
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
