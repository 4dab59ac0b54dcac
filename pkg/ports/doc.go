/*
Package ports defines the driven ports (interfaces) for the Quotient engine.

These interfaces decouple the conversion pipeline from its storage backends and
from the transports (HTTP, MCP, CLI) that drive it.

# Key Interfaces

  - Converter: the pipeline operations the transports call.
  - ConversionStore: persists and loads recorded conversions.
  - DistributedLocker: coordinates identical conversions across replicas.
*/
package ports
