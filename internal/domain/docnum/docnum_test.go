package docnum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuananh-dev/qltb-api/internal/domain"
	"github.com/tuananh-dev/qltb-api/internal/domain/entity"
)

var jan2026 = time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)

func TestPrefixFor(t *testing.T) {
	tests := []struct {
		kind    string
		prefix  string
		wantErr bool
	}{
		{entity.MovementKindIn, "PN", false},
		{entity.MovementKindOut, "PX", false},
		{entity.MovementKindTransfer, "DC", false},
		{"adjustment", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := PrefixFor(tt.kind)
		if tt.wantErr {
			require.ErrorIs(t, err, domain.ErrValidation, "kind %q", tt.kind)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.prefix, got)
	}
}

func TestBucket(t *testing.T) {
	assert.Equal(t, "PN202601", Bucket("PN", jan2026))
	assert.Equal(t, "PX202612", Bucket("PX", time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)))
	// Tháng một chữ số phải đệm số 0.
	assert.Equal(t, "DC202603", Bucket("DC", time.Date(2026, time.March, 31, 23, 59, 0, 0, time.UTC)))
}

func TestNext(t *testing.T) {
	tests := []struct {
		name string
		last string
		want string
	}{
		{"kỳ chưa có chứng từ", "", "PN202601-001"},
		{"nối tiếp số hiện có", "PN202601-002", "PN202601-003"},
		{"qua 99", "PN202601-099", "PN202601-100"},
		{"vượt 999 giãn 4 chữ số", "PN202601-999", "PN202601-1000"},
		{"nối tiếp sau 4 chữ số", "PN202601-1041", "PN202601-1042"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next("PN", jan2026, tt.last)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextRejectsForeignBucket(t *testing.T) {
	// Số của kỳ khác không được dùng làm mốc cho kỳ này.
	_, err := Next("PN", jan2026, "PN202512-007")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = Next("PN", jan2026, "PX202601-007")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestSuffix(t *testing.T) {
	n, err := Suffix("PN202601-003")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = Suffix("PN202601003")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = Suffix("PN202601-abc")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = Suffix("PN202601-0")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestMonthRollover(t *testing.T) {
	// Sang tháng mới chuỗi số bắt đầu lại từ 001 (bucket khác → last rỗng).
	feb := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	got, err := Next("PN", feb, "")
	require.NoError(t, err)
	assert.Equal(t, "PN202602-001", got)
}
