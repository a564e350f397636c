package txpool

import (
	"github.com/pledgechain/pledge/metrics"
)

var (
	metricTxPoolGauge            = metrics.LazyLoadGaugeVec("txpool_current_tx_count", []string{"source"})
	metricTxPoolExecutablesGauge = metrics.LazyLoadGauge("txpool_executables_count")
	metricBadTxCounter           = metrics.LazyLoadCounter("txpool_bad_tx_count")
)
