package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将分页结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(plan *Plan, path string) error {
	if plan == nil {
		return nil
	}
	data, err := MarshalDebug(plan)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// MarshalDebug 返回缩进后的 JSON。
func MarshalDebug(plan *Plan) ([]byte, error) {
	return json.MarshalIndent(plan, "", "  ")
}
