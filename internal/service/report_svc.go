package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"etsy_sales_collector/internal/repository"
)

// 没有成交记录的月份用哨兵标记，区别于零销售额
const naSentinel = "N/A"

// ReportRow 报表的一行
// 日期格式 M/YY，参与者编号按店铺枚举顺序从 1 开始
type ReportRow struct {
	ParticipantID string `json:"participant_id"`
	Date          string `json:"date"`
	Revenue       string `json:"revenue"`
	Sales         string `json:"sales"`
}

// ReportService 报表投影
// 对已摄入数据做纯投影，每个店铺 × 固定窗口内的每个月输出一行
type ReportService struct {
	salesRepo repository.SalesRepository
}

// NewReportService 工厂方法
func NewReportService(salesRepo repository.SalesRepository) *ReportService {
	return &ReportService{salesRepo: salesRepo}
}

// GetCondensedData 输出压缩格式的月度汇总
func (s *ReportService) GetCondensedData(ctx context.Context) ([]ReportRow, error) {
	aggregates, err := s.salesRepo.AggregateByShopAndMonth(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ReportRow, 0, len(aggregates))
	for _, agg := range aggregates {
		row := ReportRow{
			ParticipantID: fmt.Sprintf("Artist_%d", agg.ShopIndex),
			Date:          fmt.Sprintf("%d/%02d", int(agg.Month), agg.Year%100),
			Revenue:       naSentinel,
			Sales:         naSentinel,
		}
		if agg.Revenue != nil {
			row.Revenue = strconv.FormatFloat(*agg.Revenue, 'f', -1, 64)
		}
		if agg.Units != nil {
			row.Sales = strconv.FormatInt(*agg.Units, 10)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteCSV 把报表写成 CSV
func (s *ReportService) WriteCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.GetCondensedData(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"participant id", "date", "revenue", "sales"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{row.ParticipantID, row.Date, row.Revenue, row.Sales}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
