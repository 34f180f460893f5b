// Package metrics khai báo các counter Prometheus của dịch vụ, phục vụ
// endpoint /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProposalTransitions đếm số lần chuyển trạng thái đề xuất theo thao tác
	// và kết quả (ok / lỗi nghiệp vụ).
	ProposalTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qltb_proposal_transitions_total",
		Help: "So lan chuyen trang thai de xuat, theo thao tac va ket qua.",
	}, []string{"op", "result"})

	// DocumentsMinted đếm số chứng từ kho đã cấp số, theo tiền tố.
	DocumentsMinted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qltb_documents_minted_total",
		Help: "So chung tu kho da cap so, theo tien to (PN/PX/DC).",
	}, []string{"prefix"})
)
