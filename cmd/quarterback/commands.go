package main

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/quarterback/quarterback/pkg/engine"
	"github.com/quarterback/quarterback/pkg/loader"
	"github.com/quarterback/quarterback/pkg/models"
)

func newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics [basket-id]",
		Short: "Aggregate basket exposure, P&L, carry and risk metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.snapshots.Close()

			positions, err := a.positions()
			if err != nil {
				return err
			}

			baskets := loader.BasketIDs(positions)
			if len(args) == 1 {
				baskets = []string{args[0]}
			}

			out := make(map[string]models.BasketMetrics, len(baskets))
			for _, id := range baskets {
				out[id] = engine.ComputeBasketMetrics(loader.BasketPositions(positions, id), a.asOf)
			}
			return printJSON(out)
		},
	}
}

func newRebalanceCmd() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "rebalance [basket-id]",
		Short: "Compare equity holdings against benchmark index weights",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.snapshots.Close()

			positions, err := a.positions()
			if err != nil {
				return err
			}
			benchmark, err := a.benchmark()
			if err != nil {
				return err
			}

			if threshold < 0 {
				threshold = a.cfg.Thresholds.RebalanceShares
			}

			baskets := loader.BasketIDs(positions)
			if len(args) == 1 {
				baskets = []string{args[0]}
			}

			var records []models.RebalancingRecord
			for _, id := range baskets {
				records = append(records, engine.ComputeRebalancingNeeds(loader.BasketPositions(positions, id), benchmark, threshold)...)
			}

			needed := 0
			for _, rec := range records {
				if rec.NeedsRebalancing {
					needed++
				}
			}
			a.logger.WithFields(logrus.Fields{
				"records":           len(records),
				"needs_rebalancing": needed,
				"threshold_shares":  threshold,
			}).Info("Rebalancing analysis complete")

			return printJSON(records)
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", -1, "share drift threshold; 0 flags any drift (default from config)")
	return cmd
}

func newUnwindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unwind <basket-id>",
		Short: "Generate the trades that fully close every leg of a basket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.snapshots.Close()

			positions, err := a.positions()
			if err != nil {
				return err
			}
			benchmark, err := a.benchmark()
			if err != nil {
				return err
			}

			set := engine.UnwindBasket(positions, benchmark, args[0])
			a.logger.WithFields(logrus.Fields{
				"basket_id":      set.BasketID,
				"instruction_id": set.InstructionID,
				"futures_trades": len(set.Futures),
				"cash_trades":    len(set.Cash),
				"equity_trades":  len(set.Equities),
			}).Info("Unwind instruction set generated")
			return printJSON(set)
		},
	}
}

func newResizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resize <basket-id> <notional>",
		Short: "Resize every leg of a basket by a signed notional delta",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			notional, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid notional %q: %w", args[1], err)
			}

			a, err := setup()
			if err != nil {
				return err
			}
			defer a.snapshots.Close()

			positions, err := a.positions()
			if err != nil {
				return err
			}
			benchmark, err := a.benchmark()
			if err != nil {
				return err
			}

			set := engine.ResizeBasket(positions, benchmark, args[0], notional)
			a.logger.WithFields(logrus.Fields{
				"basket_id":            set.BasketID,
				"instruction_id":       set.InstructionID,
				"transaction_notional": notional,
			}).Info("Resize instruction set generated")
			return printJSON(set)
		},
	}
}

func newMatrixCmd() *cobra.Command {
	var criteria engine.OpportunityCriteria

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Build the implied forward-rate and carry matrices and scan for opportunities",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.snapshots.Close()

			contracts, err := a.futuresCurve()
			if err != nil {
				return err
			}

			forward := engine.ComputeForwardRateMatrix(contracts, a.asOf)
			carry := engine.ComputeCarryMatrix(contracts, a.asOf)
			opportunities := engine.FilterOpportunities(forward, carry, contracts, criteria, a.asOf)

			a.logger.WithFields(logrus.Fields{
				"contracts":     len(contracts),
				"valid_cells":   forward.Len(),
				"opportunities": len(opportunities),
			}).Info("Forward rate matrix computed")

			type cell struct {
				From            string  `json:"from"`
				To              string  `json:"to"`
				ForwardRate     float64 `json:"forward_rate"`
				AnnualizedCarry float64 `json:"annualized_carry"`
			}
			var cells []cell
			for _, from := range forward.Codes {
				for _, to := range forward.Codes {
					fwd, ok := forward.Value(from, to)
					if !ok {
						continue
					}
					cry, _ := carry.Value(from, to)
					cells = append(cells, cell{From: from, To: to, ForwardRate: fwd, AnnualizedCarry: cry})
				}
			}

			return printJSON(map[string]any{
				"cells":         cells,
				"opportunities": opportunities,
			})
		},
	}

	cmd.Flags().Float64Var(&criteria.MinForwardRate, "min-forward-rate", 0, "minimum implied forward rate in bps (0 = off)")
	cmd.Flags().Float64Var(&criteria.MinAnnualizedCarry, "min-carry", 0, "minimum annualized carry in bps (0 = off)")
	cmd.Flags().IntVar(&criteria.MinPeriodDays, "min-period", 0, "minimum forward period in days (0 = off)")
	cmd.Flags().IntVar(&criteria.MaxPeriodDays, "max-period", 0, "maximum forward period in days (0 = off)")
	return cmd
}

func newCorpActionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "corpactions [basket-id]",
		Short: "Compute corporate-action weight impacts and basket trade recommendations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.snapshots.Close()

			positions, err := a.positions()
			if err != nil {
				return err
			}
			benchmark, err := a.benchmark()
			if err != nil {
				return err
			}
			events, err := a.corpActions()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				recs := engine.BasketCalendarRecommendations(args[0], positions, events, benchmark, a.asOf, engine.DefaultCalendarWindow)
				return printJSON(recs)
			}

			type result struct {
				Impact          models.CorpActionImpact      `json:"impact"`
				Recommendations []models.EventRecommendation `json:"recommendations"`
			}
			var out []result
			for _, ev := range events {
				impact := engine.ComputeCorpActionImpact(ev, benchmark)
				if !impact.HasWeightChange {
					continue
				}
				out = append(out, result{
					Impact:          impact,
					Recommendations: engine.EventTradeRecommendations(ev, positions, benchmark),
				})
			}
			return printJSON(out)
		},
	}
}
