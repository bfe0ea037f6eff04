// Copyright 2026 Harborview Analytics
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/harborview/signals/core"
)

// MarshalProfile serializes a CompanyProfile to bytes.
func MarshalProfile(profile *core.CompanyProfile) []byte {
	buf := make([]byte, core.CompanyProfileMUS.Size(*profile))
	core.CompanyProfileMUS.Marshal(*profile, buf)
	return buf
}

// UnmarshalProfile deserializes a CompanyProfile from bytes.
func UnmarshalProfile(data []byte) (*core.CompanyProfile, error) {
	profile, _, err := core.CompanyProfileMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// MarshalSnapshot serializes a Snapshot to bytes.
func MarshalSnapshot(snapshot *core.Snapshot) []byte {
	buf := make([]byte, core.SnapshotMUS.Size(*snapshot))
	core.SnapshotMUS.Marshal(*snapshot, buf)
	return buf
}

// UnmarshalSnapshot deserializes a Snapshot from bytes.
func UnmarshalSnapshot(data []byte) (*core.Snapshot, error) {
	snapshot, _, err := core.SnapshotMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// MarshalSample serializes a MetricSample to bytes.
func MarshalSample(sample *core.MetricSample) []byte {
	buf := make([]byte, core.MetricSampleMUS.Size(*sample))
	core.MetricSampleMUS.Marshal(*sample, buf)
	return buf
}

// UnmarshalSample deserializes a MetricSample from bytes.
func UnmarshalSample(data []byte) (*core.MetricSample, error) {
	sample, _, err := core.MetricSampleMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &sample, nil
}

// MarshalChunk serializes a KnowledgeChunk to bytes.
func MarshalChunk(chunk *core.KnowledgeChunk) []byte {
	buf := make([]byte, core.KnowledgeChunkMUS.Size(*chunk))
	core.KnowledgeChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalChunk deserializes a KnowledgeChunk from bytes.
func UnmarshalChunk(data []byte) (*core.KnowledgeChunk, error) {
	chunk, _, err := core.KnowledgeChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// MarshalDigest serializes a content digest to bytes.
func MarshalDigest(digest core.Digest) []byte {
	buf := make([]byte, core.DigestMUS.Size(digest))
	core.DigestMUS.Marshal(digest, buf)
	return buf
}

// UnmarshalDigest deserializes a content digest from bytes.
func UnmarshalDigest(data []byte) (core.Digest, error) {
	digest, _, err := core.DigestMUS.Unmarshal(data)
	return digest, err
}
