/*
 * @File : fileops
 * @Date : 2025/1/27
 * @Author : Assistant
 * @Version: 1.0.0
 * @Description: 产物文件的追加写入与清理
 */

package fileops

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileManager 文件管理器
type FileManager struct {
	tempDir string
}

// NewFileManager 创建文件管理器
func NewFileManager(tempDir string) *FileManager {
	return &FileManager{tempDir: tempDir}
}

// EnsureTempDir 确保临时目录存在
func (fm *FileManager) EnsureTempDir() error {
	if err := os.MkdirAll(fm.tempDir, 0755); err != nil {
		return fmt.Errorf("创建临时目录失败: %w", err)
	}
	return nil
}

// CleanTempDir 清理临时目录
func (fm *FileManager) CleanTempDir() error {
	if err := os.RemoveAll(fm.tempDir); err != nil {
		return fmt.Errorf("清理临时目录失败: %w", err)
	}
	return nil
}

// AppendBlock 向输出文件追加一个文本块，多表产物之间以空行分隔
// 输出目录不存在时自动创建
func (fm *FileManager) AppendBlock(path, block string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("打开输出文件失败: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(block + "\n"); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

// TruncateOutput 清空输出文件（常驻模式每轮重新生成前调用）
func (fm *FileManager) TruncateOutput(path string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("清空输出文件失败: %w", err)
	}
	return f.Close()
}
