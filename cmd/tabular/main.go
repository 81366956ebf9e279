// Copyright 2023-2024 daviszhen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/daviszhen/tabular/pkg/column"
	"github.com/daviszhen/tabular/pkg/copying"
	"github.com/daviszhen/tabular/pkg/sched"
	"github.com/daviszhen/tabular/pkg/util"
)

func init() {
	cobra.OnInitialize(loadConfig)
	initDemoCmd()
}

var runCfg = &util.Config{}

var info = "tabular"
var RootCmd = &cobra.Command{
	Use:          "tabular",
	Short:        info,
	Long:         info,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("use tabular --help or -h")
	},
}

var demoInfo = "rearrange a sample table: gather, split, pack"
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: demoInfo,
	Long:  demoInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		initDemoCfg()
		return runDemo(&runCfg.Demo)
	},
}

func initDemoCfg() {
	runCfg.Demo.Rows = viper.GetInt("demo.rows")
	runCfg.Demo.Parts = viper.GetInt("demo.parts")
	runCfg.Demo.Seed = viper.GetInt64("demo.seed")
	runCfg.Demo.Queue = viper.GetString("demo.queue")
	runCfg.Demo.PrintRows = viper.GetBool("demo.printRows")
}

func initDemoCmd() {
	RootCmd.AddCommand(demoCmd)
	demoCmd.Flags().IntVar(&runCfg.Demo.Rows, "rows", 16, "row count of the sample table")
	demoCmd.Flags().IntVar(&runCfg.Demo.Parts, "parts", 4, "partition count for split")
	demoCmd.Flags().Int64Var(&runCfg.Demo.Seed, "seed", 1, "sample data seed")
	demoCmd.Flags().StringVar(&runCfg.Demo.Queue, "queue", "demo", "execution queue name")
	demoCmd.Flags().BoolVar(&runCfg.Demo.PrintRows, "print_rows", true, "print table rows")

	viper.BindPFlag("demo.rows", demoCmd.Flags().Lookup("rows"))
	viper.BindPFlag("demo.parts", demoCmd.Flags().Lookup("parts"))
	viper.BindPFlag("demo.seed", demoCmd.Flags().Lookup("seed"))
	viper.BindPFlag("demo.queue", demoCmd.Flags().Lookup("queue"))
	viper.BindPFlag("demo.printRows", demoCmd.Flags().Lookup("print_rows"))
}

var defCfgFilePaths = []string{".", "etc"}
var cfgFileName = "tabular.toml"

func loadConfig() {
	for _, dirPath := range defCfgFilePaths {
		fpath := filepath.Join(dirPath, cfgFileName)
		if util.FileIsValid(fpath) {
			var fileCfg util.Config
			_, err := toml.DecodeFile(fpath, &fileCfg)
			if err != nil {
				util.Error("load config file failed",
					zap.String("fpath", fpath),
					zap.Error(err))
				continue
			}
			viper.SetConfigFile(fpath)
			if err = viper.ReadInConfig(); err != nil {
				util.Error("viper load config file failed",
					zap.String("fpath", fpath),
					zap.Error(err))
			}
			break
		}
	}
}

func sampleTable(rows int, seed int64) (*column.Table, error) {
	rng := rand.New(rand.NewSource(seed))
	ids := make([]int32, rows)
	vals := make([]float64, rows)
	labels := make([]string, rows)
	for i := 0; i < rows; i++ {
		ids[i] = int32(i)
		vals[i] = rng.Float64() * 100
		labels[i] = fmt.Sprintf("row-%04d", rng.Intn(rows*10))
	}
	idCol := column.NewIntegerColumn(ids)
	valCol := column.NewDoubleColumn(vals)
	labelCol := column.NewVarcharColumn(labels)
	for i := 0; i < rows; i++ {
		if rng.Intn(7) == 0 {
			valCol.SetNull(i, true)
		}
	}
	return column.NewTable(idCol, valCol, labelCol)
}

func runDemo(cfg *util.DemoConfig) error {
	if cfg.Rows <= 0 || cfg.Parts <= 0 || cfg.Parts > cfg.Rows {
		return fmt.Errorf("bad demo config: rows %d parts %d", cfg.Rows, cfg.Parts)
	}
	queue := sched.NewQueue(cfg.Queue)
	defer queue.Close()
	env := &copying.Env{Queue: queue}

	tbl, err := sampleTable(cfg.Rows, cfg.Seed)
	if err != nil {
		return err
	}
	defer tbl.Release(nil)
	if cfg.PrintRows {
		tbl.View().Print2("sample")
	}

	// reverse the table through a gather map
	rev := make([]int32, cfg.Rows)
	for i := range rev {
		rev[i] = int32(cfg.Rows - 1 - i)
	}
	revMap := column.NewIntegerColumn(rev)
	defer revMap.Release(nil)

	reversed, err := copying.Gather(tbl.View(), revMap.View(), true, env)
	if err != nil {
		return err
	}
	defer reversed.Release(nil)
	if cfg.PrintRows {
		reversed.View().Print2("reversed")
	}

	// cut it into equal partitions and pack each one
	splits := make([]int, 0, cfg.Parts-1)
	for i := 1; i < cfg.Parts; i++ {
		splits = append(splits, i*cfg.Rows/cfg.Parts)
	}
	packs, err := copying.ContiguousSplit(reversed.View(), splits, env)
	if err != nil {
		return err
	}
	for i, pack := range packs {
		util.Info("packed partition",
			zap.Int("part", i),
			zap.Int("rows", pack.View().Rows()),
			zap.Int("bytes", len(pack.Block())))
		if cfg.PrintRows {
			pack.View().Print2(fmt.Sprintf("part-%d", i))
		}
		pack.Release(nil)
	}
	return nil
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		util.Error("tabular failed", zap.Error(err))
		os.Exit(1)
	}
}
