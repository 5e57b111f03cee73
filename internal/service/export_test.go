package service

// DummyPasswordHash re-exports dummyPasswordHash for external tests.
const DummyPasswordHash = dummyPasswordHash
