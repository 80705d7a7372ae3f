/*
 * @File : run
 * @Date : 2025/1/27
 * @Author : Assistant
 * @Version: 1.0.0
 * @Description: 一次性转换流程，读取源库表结构并生成Hive DDL与PyArrow schema
 */

package convertrun

import (
	"errors"
	"fmt"
	"strings"

	"myhp/builder"
	"myhp/config"
	"myhp/database"
	"myhp/diag"
	"myhp/fileops"
	"myhp/internal/common"
	"myhp/logger"
	"myhp/typemap"

	"golang.org/x/sync/errgroup"
)

// DDLFetcher 表结构来源，便于测试时替换数据库实现
type DDLFetcher interface {
	GetTableNames() ([]string, error)
	GetTableDDL(tableName string) (string, error)
	GetSourceName() string
}

// Options 命令行覆盖项，为空时使用配置文件中的值
type Options struct {
	SourceName    string
	Tables        []string
	HiveOutput    string
	ParquetOutput string
	Strict        bool
	Verbose       bool
}

// tableResult 单表转换结果，按表序收集后再统一写出
type tableResult struct {
	tableName    string
	skipped      bool
	hiveBlock    string
	parquetBlock string
}

// Run 执行一次完整的转换流程
func Run(cfg *config.Config, opts Options) error {
	sources := cfg.Sources
	if opts.SourceName != "" {
		src, _, ok := cfg.GetSourceByName(opts.SourceName)
		if !ok {
			return fmt.Errorf("配置中不存在数据源: %s", opts.SourceName)
		}
		sources = []config.SourceConfig{*src}
	}

	sink := &diag.LogSink{}

	for i := range sources {
		src := &sources[i]
		mgr := database.NewSourceManagerByName(cfg, src.Name)
		if mgr == nil {
			return fmt.Errorf("配置中不存在数据源: %s", src.Name)
		}

		if err := RunSource(cfg, mgr, src, opts, sink); err != nil {
			return fmt.Errorf("数据源 %s 转换失败: %w", src.Name, err)
		}
	}

	return nil
}

// RunSource 转换单个数据源的所有目标表
func RunSource(cfg *config.Config, fetcher DDLFetcher, src *config.SourceConfig, opts Options, sink diag.Sink) error {
	hiveOutput := src.HiveOutput
	if opts.HiveOutput != "" {
		hiveOutput = opts.HiveOutput
	}
	parquetOutput := src.ParquetOutput
	if opts.ParquetOutput != "" {
		parquetOutput = opts.ParquetOutput
	}
	if hiveOutput == "" && parquetOutput == "" {
		return fmt.Errorf("数据源 %s 未配置任何输出文件（hive_output/parquet_output）", src.Name)
	}

	tables := src.Tables
	if len(opts.Tables) > 0 {
		tables = opts.Tables
	}
	if len(tables) == 0 {
		var err error
		tables, err = fetcher.GetTableNames()
		if err != nil {
			return fmt.Errorf("获取表清单失败: %w", err)
		}
	}
	if len(tables) == 0 {
		diag.Emitf(sink, diag.Warning, src.Name, "没有需要转换的表")
		return nil
	}

	logger.Info("开始转换数据源 %s，共 %d 张表", fetcher.GetSourceName(), len(tables))

	strict := cfg.Strict || opts.Strict
	verbose := cfg.Verbose || opts.Verbose

	parallelism := cfg.Parallelism
	if parallelism <= 0 {
		parallelism = 1
	}

	// 并发解析，结果按原表序收集，写文件保持顺序稳定
	results := make([]*tableResult, len(tables))
	var g errgroup.Group
	g.SetLimit(parallelism)

	for i, tableName := range tables {
		i, tableName := i, tableName
		g.Go(func() error {
			r, err := convertTable(cfg, fetcher, tableName, strict, verbose, parquetOutput != "", sink)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// 顺序写出，避免并发追加导致块交错
	fm := fileops.NewFileManager(cfg.TempDir)
	converted, skipped := 0, 0
	for _, r := range results {
		if r == nil || r.skipped {
			skipped++
			continue
		}
		if hiveOutput != "" {
			if err := fm.AppendBlock(hiveOutput, r.hiveBlock); err != nil {
				return fmt.Errorf("写入Hive DDL文件失败: %w", err)
			}
		}
		if parquetOutput != "" {
			if err := fm.AppendBlock(parquetOutput, r.parquetBlock); err != nil {
				return fmt.Errorf("写入Parquet schema文件失败: %w", err)
			}
		}
		converted++
	}

	diag.Emitf(sink, diag.Success, src.Name, "转换完成: 成功 %d 张表，跳过 %d 张表", converted, skipped)
	return nil
}

// convertTable 单表流水线: 取DDL -> 解析 -> 生成两种输出 -> 校验parquet schema
func convertTable(cfg *config.Config, fetcher DDLFetcher, tableName string, strict, verbose, checkParquet bool, sink diag.Sink) (*tableResult, error) {
	ddl, err := fetcher.GetTableDDL(tableName)
	if err != nil {
		if errors.Is(err, database.ErrTableNotFound) {
			diag.Emitf(sink, diag.Warning, tableName, "源库中不存在该表，已跳过")
			return &tableResult{tableName: tableName, skipped: true}, nil
		}
		return nil, fmt.Errorf("获取表 %s 的DDL失败: %w", tableName, err)
	}

	res := typemap.NewResolver(strict, verbose, sink)
	table, err := common.ParseDDLWithTimeout(ddl, res, cfg)
	if err != nil {
		var unmapped *typemap.UnmappedTypeError
		if errors.As(err, &unmapped) {
			diag.Emitf(sink, diag.Error, tableName, "%s", unmapped.Error())
		}
		return nil, fmt.Errorf("解析表 %s 失败: %w", tableName, err)
	}

	hiveBlock := builder.NewHiveDDLBuilder(table).Build()
	parquetBlock := builder.NewParquetSchemaBuilder(table).Build()

	if checkParquet {
		if err := builder.CheckParquetSchema(table); err != nil {
			return nil, fmt.Errorf("表 %s 的parquet schema校验失败: %w", tableName, err)
		}
	}

	if verbose {
		diag.Emitf(sink, diag.Info, tableName, "转换完成，共 %d 列，主键: %s",
			len(table.Columns), strings.Join(table.PrimaryKeys, ", "))
	}

	return &tableResult{
		tableName:    tableName,
		hiveBlock:    hiveBlock,
		parquetBlock: parquetBlock,
	}, nil
}
