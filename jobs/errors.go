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


package jobs

import (
	"errors"
	"fmt"
)

var (
	// ErrJobNotFound is returned when no job exists for an ID.
	ErrJobNotFound = errors.New("job not found")

	// ErrStoreRequired is returned when a runner is created without a store.
	ErrStoreRequired = errors.New("job store is required")

	// ErrRunnerClosed is returned when submitting to a released runner.
	ErrRunnerClosed = errors.New("job runner is closed")
)

// TransitionError reports an invalid job lifecycle transition.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid job transition from %s to %s", e.From, e.To)
}
