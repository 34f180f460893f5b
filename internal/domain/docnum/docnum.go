// Package docnum sinh số chứng từ kho dạng {PREFIX}{YYYY}{MM}-{NNN},
// ví dụ PN202601-003. Bảng chứng từ là nguồn sự thật duy nhất: số kế tiếp
// tính từ số lớn nhất hiện có trong cùng kỳ, không dùng bảng đếm riêng.
package docnum

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tuananh-dev/qltb-api/internal/domain"
	"github.com/tuananh-dev/qltb-api/internal/domain/entity"
)

// Tiền tố theo loại chứng từ.
const (
	PrefixStockIn  = "PN" // phiếu nhập
	PrefixStockOut = "PX" // phiếu xuất
	PrefixTransfer = "DC" // điều chuyển
)

// PrefixFor trả về tiền tố chứng từ cho một loại movement.
func PrefixFor(kind string) (string, error) {
	switch kind {
	case entity.MovementKindIn:
		return PrefixStockIn, nil
	case entity.MovementKindOut:
		return PrefixStockOut, nil
	case entity.MovementKindTransfer:
		return PrefixTransfer, nil
	}
	return "", fmt.Errorf("loại chứng từ %q: %w", kind, domain.ErrValidation)
}

// Bucket khóa kỳ của một tiền tố, ví dụ "PN202601". Số chứng từ chỉ phải
// duy nhất và tăng dần trong phạm vi một bucket.
func Bucket(prefix string, t time.Time) string {
	return fmt.Sprintf("%s%04d%02d", prefix, t.Year(), int(t.Month()))
}

// Suffix tách phần số thứ tự sau dấu gạch của một số chứng từ.
func Suffix(docNo string) (int, error) {
	i := strings.LastIndex(docNo, "-")
	if i < 0 {
		return 0, fmt.Errorf("số chứng từ %q thiếu dấu gạch: %w", docNo, domain.ErrValidation)
	}
	n, err := strconv.Atoi(docNo[i+1:])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("số chứng từ %q có thứ tự sai: %w", docNo, domain.ErrValidation)
	}
	return n, nil
}

// Next sinh số chứng từ kế tiếp trong bucket của prefix tại thời điểm t.
// last là số lớn nhất hiện có trong bucket (chuỗi rỗng nếu kỳ chưa có
// chứng từ nào → bắt đầu từ 001). Thứ tự đệm 3 chữ số, vượt 999 thì tự
// giãn ra 4 chữ số theo %03d.
func Next(prefix string, t time.Time, last string) (string, error) {
	bucket := Bucket(prefix, t)
	if last == "" {
		return bucket + "-001", nil
	}
	if !strings.HasPrefix(last, bucket+"-") {
		return "", fmt.Errorf("số %q không thuộc kỳ %s: %w", last, bucket, domain.ErrValidation)
	}
	n, err := Suffix(last)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%03d", bucket, n+1), nil
}
