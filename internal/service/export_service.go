package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"schedule-arranger/backend/internal/dto"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 导出内容与出欠表视图一致（同一套组装逻辑），
// 以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response。
type ExportService interface {
	// ExportSchedule 导出出欠表为 Excel，返回内容与建议文件名
	ExportSchedule(ctx context.Context, scheduleID string, viewer dto.Identity) (*bytes.Buffer, string, error)
}

// scheduleViewer 导出所需的视图来源
type scheduleViewer interface {
	GetView(ctx context.Context, scheduleID string, viewer dto.Identity) (*dto.ScheduleView, error)
}

type exportService struct {
	views  scheduleViewer
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(views scheduleViewer, logger *zap.Logger) ExportService {
	return &exportService{views: views, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportSchedule
// ═══════════════════════════════════════════════════════════
//
// 输出格式（单个 Sheet "出欠表"）：
//   - 第 1 行：予定名称
//   - 第 2 行：| 候选日程 | 参与者1 | 参与者2 | ...
//   - 数据行：候选日程名称 + 每位参与者的出欠标签（欠 / ？ / 出）
//   - 最后一行：评论

func (s *exportService) ExportSchedule(ctx context.Context, scheduleID string, viewer dto.Identity) (*bytes.Buffer, string, error) {
	view, err := s.views.GetView(ctx, scheduleID, viewer)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "出欠表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	lastCol := colName(len(view.Participants))

	f.SetColWidth(sheetName, "A", "A", 24)
	if len(view.Participants) > 0 {
		f.SetColWidth(sheetName, "B", lastCol, 14)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", view.ScheduleName)
	if len(view.Participants) > 0 {
		f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	}
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "候选日程")
	for j, p := range view.Participants {
		f.SetCellValue(sheetName, cell(colName(1+j), row), p.Username)
	}
	f.SetCellStyle(sheetName, cell("A", row), cell(lastCol, row), headerStyle)

	// 数据行
	row = 3
	for i, c := range view.Candidates {
		f.SetCellValue(sheetName, cell("A", row), c.CandidateName)
		for j := range view.Participants {
			f.SetCellValue(sheetName, cell(colName(1+j), row), view.Cell(i, j).Label())
		}
		row++
	}

	// 评论行
	f.SetCellValue(sheetName, cell("A", row), "评论")
	for j, comment := range view.Comments {
		f.SetCellValue(sheetName, cell(colName(1+j), row), comment)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		ctxLogger(ctx, s.logger).Error("写入 Excel 失败", zap.String("schedule_id", scheduleID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("出欠表_%s.xlsx", view.ScheduleName)
	return buf, filename, nil
}

// ── 辅助函数 ──

// colName 0 起始的列序号转列名（0 → A）
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
