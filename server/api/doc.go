// Package api serves the pipeline API of seqd under /v1.
//
//	GET  /v1/pipelines            list catalog definitions
//	GET  /v1/pipelines/:name      fetch one definition
//	POST /v1/pipelines/:name/run  run a catalog definition
//	POST /v1/run                  run an inline definition (JSON or YAML body)
//	GET  /v1/funcs                list registered mapper and predicate functions
package api
