package docx

import (
	"encoding/xml"
	"strings"
)

// Table 文档中的一个表格
// 表格在本系统中是只读的：文本抽取会读取单元格内容，
// 但任何增强操作都不会修改表格
type Table struct {
	rows [][]string
}

// xmlTable 表格XML反序列化结构
type xmlTable struct {
	Rows []xmlTableRow `xml:"tr"`
}

type xmlTableRow struct {
	Cells []xmlTableCell `xml:"tc"`
}

type xmlTableCell struct {
	Paras []xmlParagraph `xml:"p"`
}

// parseTable 从原始XML片段解析表格的单元格文本
func parseTable(raw string) *Table {
	t := &Table{}

	var xt xmlTable
	if err := xml.Unmarshal([]byte(raw), &xt); err != nil {
		return t
	}

	for _, xr := range xt.Rows {
		var row []string
		for _, xc := range xr.Cells {
			var parts []string
			for _, xp := range xc.Paras {
				var text strings.Builder
				for _, run := range xp.Runs {
					for _, wt := range run.Texts {
						text.WriteString(wt.Value)
					}
				}
				if text.Len() > 0 {
					parts = append(parts, text.String())
				}
			}
			row = append(row, strings.Join(parts, "\n"))
		}
		t.rows = append(t.rows, row)
	}
	return t
}

// Rows 返回表格各行的单元格文本
func (t *Table) Rows() [][]string {
	return t.rows
}
