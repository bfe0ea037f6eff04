package core

import (
	"math"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for every persisted record type. These are maintained by
// hand but keep the <Type>MUS naming used by musgen output so storage code
// reads the same either way.
var (
	DigestMUS         = digestMUS{}
	AnalysisMUS       = analysisMUS{}
	MonitoringMUS     = monitoringMUS{}
	CompanyProfileMUS = companyProfileMUS{}
	SnapshotMUS       = snapshotMUS{}
	MetricSampleMUS   = metricSampleMUS{}
	KnowledgeChunkMUS = knowledgeChunkMUS{}

	stringSliceMUS = ord.NewSliceSer[string](ord.String)
	stringMapMUS   = ord.NewMapSer[string, string](ord.String, ord.String)
	vectorMUS      = ord.NewSliceSer[float32](raw.Float32)
	timeMUS        = timeMicroMUS{}
)

// zeroTimeMarker encodes the zero time.Time, which has no meaningful
// Unix-micro representation.
const zeroTimeMarker = math.MinInt64

type timeMicroMUS struct{}

func (timeMicroMUS) Marshal(v time.Time, bs []byte) (n int) {
	us := int64(zeroTimeMarker)
	if !v.IsZero() {
		us = v.UnixMicro()
	}
	return varint.Int64.Marshal(us, bs)
}

func (timeMicroMUS) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	us, n, err := varint.Int64.Unmarshal(bs)
	if err != nil || us == zeroTimeMarker {
		return
	}
	v = time.UnixMicro(us).UTC()
	return
}

func (timeMicroMUS) Size(v time.Time) int {
	us := int64(zeroTimeMarker)
	if !v.IsZero() {
		us = v.UnixMicro()
	}
	return varint.Int64.Size(us)
}

func (timeMicroMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

type digestMUS struct{}

func (digestMUS) Marshal(v Digest, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (digestMUS) Unmarshal(bs []byte) (v Digest, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return Digest(u), n, err
}

func (digestMUS) Size(v Digest) int {
	return varint.Uint64.Size(uint64(v))
}

func (digestMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type analysisMUS struct{}

func (analysisMUS) Marshal(v Analysis, bs []byte) (n int) {
	n = ord.String.Marshal(v.Name, bs)
	n += ord.String.Marshal(v.Summary, bs[n:])
	n += ord.String.Marshal(string(v.Metrics.Sentiment), bs[n:])
	n += varint.Int.Marshal(v.Metrics.SignalStrength, bs[n:])
	n += varint.Int.Marshal(v.Metrics.PMFScore, bs[n:])
	n += stringSliceMUS.Marshal(v.Competitors, bs[n:])
	n += stringSliceMUS.Marshal(v.Strengths, bs[n:])
	n += stringSliceMUS.Marshal(v.RedFlags, bs[n:])
	n += ord.String.Marshal(v.Funding, bs[n:])
	n += ord.String.Marshal(v.Website, bs[n:])
	n += ord.String.Marshal(v.Error, bs[n:])
	return
}

func (analysisMUS) Unmarshal(bs []byte) (v Analysis, n int, err error) {
	var n1 int
	if v.Name, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	v.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var sentiment string
	sentiment, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metrics.Sentiment = Sentiment(sentiment)
	v.Metrics.SignalStrength, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metrics.PMFScore, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Competitors, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Strengths, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.RedFlags, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Funding, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Website, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Error, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (analysisMUS) Size(v Analysis) (size int) {
	size = ord.String.Size(v.Name)
	size += ord.String.Size(v.Summary)
	size += ord.String.Size(string(v.Metrics.Sentiment))
	size += varint.Int.Size(v.Metrics.SignalStrength)
	size += varint.Int.Size(v.Metrics.PMFScore)
	size += stringSliceMUS.Size(v.Competitors)
	size += stringSliceMUS.Size(v.Strengths)
	size += stringSliceMUS.Size(v.RedFlags)
	size += ord.String.Size(v.Funding)
	size += ord.String.Size(v.Website)
	size += ord.String.Size(v.Error)
	return
}

func (s analysisMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type monitoringMUS struct{}

func (monitoringMUS) Marshal(v Monitoring, bs []byte) (n int) {
	n = ord.Bool.Marshal(v.Active, bs)
	n += varint.Int.Marshal(v.IntervalHours, bs[n:])
	n += timeMUS.Marshal(v.LastChecked, bs[n:])
	n += timeMUS.Marshal(v.NextCheck, bs[n:])
	return
}

func (monitoringMUS) Unmarshal(bs []byte) (v Monitoring, n int, err error) {
	var n1 int
	if v.Active, n, err = ord.Bool.Unmarshal(bs); err != nil {
		return
	}
	v.IntervalHours, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.LastChecked, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.NextCheck, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (monitoringMUS) Size(v Monitoring) (size int) {
	size = ord.Bool.Size(v.Active)
	size += varint.Int.Size(v.IntervalHours)
	size += timeMUS.Size(v.LastChecked)
	size += timeMUS.Size(v.NextCheck)
	return
}

func (s monitoringMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type companyProfileMUS struct{}

func (companyProfileMUS) Marshal(v CompanyProfile, bs []byte) (n int) {
	n = ord.String.Marshal(v.Slug, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Website, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += AnalysisMUS.Marshal(v.Analysis, bs[n:])
	n += stringMapMUS.Marshal(v.AgentMetrics, bs[n:])
	n += ord.Bool.Marshal(v.Watchlist, bs[n:])
	n += MonitoringMUS.Marshal(v.Monitoring, bs[n:])
	n += timeMUS.Marshal(v.CrawledAt, bs[n:])
	n += timeMUS.Marshal(v.UpdatedAt, bs[n:])
	return
}

func (companyProfileMUS) Unmarshal(bs []byte) (v CompanyProfile, n int, err error) {
	var n1 int
	if v.Slug, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Website, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Analysis, n1, err = AnalysisMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.AgentMetrics, n1, err = stringMapMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Watchlist, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Monitoring, n1, err = MonitoringMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CrawledAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (companyProfileMUS) Size(v CompanyProfile) (size int) {
	size = ord.String.Size(v.Slug)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Website)
	size += ord.String.Size(v.Description)
	size += AnalysisMUS.Size(v.Analysis)
	size += stringMapMUS.Size(v.AgentMetrics)
	size += ord.Bool.Size(v.Watchlist)
	size += MonitoringMUS.Size(v.Monitoring)
	size += timeMUS.Size(v.CrawledAt)
	size += timeMUS.Size(v.UpdatedAt)
	return
}

func (s companyProfileMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type snapshotMUS struct{}

func (snapshotMUS) Marshal(v Snapshot, bs []byte) (n int) {
	n = ord.String.Marshal(v.Slug, bs)
	n += AnalysisMUS.Marshal(v.Analysis, bs[n:])
	n += stringMapMUS.Marshal(v.AgentMetrics, bs[n:])
	n += timeMUS.Marshal(v.Timestamp, bs[n:])
	return
}

func (snapshotMUS) Unmarshal(bs []byte) (v Snapshot, n int, err error) {
	var n1 int
	if v.Slug, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	v.Analysis, n1, err = AnalysisMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.AgentMetrics, n1, err = stringMapMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Timestamp, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (snapshotMUS) Size(v Snapshot) (size int) {
	size = ord.String.Size(v.Slug)
	size += AnalysisMUS.Size(v.Analysis)
	size += stringMapMUS.Size(v.AgentMetrics)
	size += timeMUS.Size(v.Timestamp)
	return
}

func (s snapshotMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type metricSampleMUS struct{}

func (metricSampleMUS) Marshal(v MetricSample, bs []byte) (n int) {
	n = ord.String.Marshal(v.Slug, bs)
	n += timeMUS.Marshal(v.Timestamp, bs[n:])
	n += ord.String.Marshal(string(v.Sentiment), bs[n:])
	n += varint.Int.Marshal(v.SignalStrength, bs[n:])
	n += varint.Int.Marshal(v.PMFScore, bs[n:])
	n += ord.String.Marshal(v.HiringStatus, bs[n:])
	n += varint.Int.Marshal(v.OpenRoles, bs[n:])
	n += ord.Bool.Marshal(v.HasFreeTier, bs[n:])
	return
}

func (metricSampleMUS) Unmarshal(bs []byte) (v MetricSample, n int, err error) {
	var n1 int
	if v.Slug, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	v.Timestamp, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var sentiment string
	sentiment, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Sentiment = Sentiment(sentiment)
	v.SignalStrength, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.PMFScore, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.HiringStatus, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.OpenRoles, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.HasFreeTier, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	return
}

func (metricSampleMUS) Size(v MetricSample) (size int) {
	size = ord.String.Size(v.Slug)
	size += timeMUS.Size(v.Timestamp)
	size += ord.String.Size(string(v.Sentiment))
	size += varint.Int.Size(v.SignalStrength)
	size += varint.Int.Size(v.PMFScore)
	size += ord.String.Size(v.HiringStatus)
	size += varint.Int.Size(v.OpenRoles)
	size += ord.Bool.Size(v.HasFreeTier)
	return
}

func (s metricSampleMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type knowledgeChunkMUS struct{}

func (knowledgeChunkMUS) Marshal(v KnowledgeChunk, bs []byte) (n int) {
	n = ord.String.Marshal(v.Slug, bs)
	n += ord.String.Marshal(string(v.Source), bs[n:])
	n += varint.Int.Marshal(v.Index, bs[n:])
	n += ord.String.Marshal(v.Text, bs[n:])
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	return
}

func (knowledgeChunkMUS) Unmarshal(bs []byte) (v KnowledgeChunk, n int, err error) {
	var n1 int
	if v.Slug, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	var source string
	source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Source = ChunkSource(source)
	v.Index, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (knowledgeChunkMUS) Size(v KnowledgeChunk) (size int) {
	size = ord.String.Size(v.Slug)
	size += ord.String.Size(string(v.Source))
	size += varint.Int.Size(v.Index)
	size += ord.String.Size(v.Text)
	size += vectorMUS.Size(v.Vector)
	return
}

func (s knowledgeChunkMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}
