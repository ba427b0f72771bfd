package api

// EngineVersion identifies the wheel core build. Returned on every response
// so replayed sessions can be pinned to the code that produced them.
const EngineVersion = "1.0.0"
