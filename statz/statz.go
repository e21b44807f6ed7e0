package main

import (
	"context"
	. "fmt"
	"github.com/dterei/gotsc"
	"github.com/p7r0x7/shavanity"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"golang.org/x/sys/cpu"
	"hash"
	"runtime"
	"sync"
	"testing"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Statz measures the forging loop: counter rewrite plus digest of a typical commit, per core for
// each object format and for two non-git baselines, and then across every core.

const commit = "commit 245\x00tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904\n" +
	"parent 8f9b4d5a7b1b5b0bd4f2c4fca1a3b4dc0e53c2f1\n" +
	"author A U Thor <author@example.com> 1112911993 -0700\n" +
	"committer C O Mitter <committer@example.com> 1112911993 -0700\n\n" +
	"Add the thing that does the stuff\n"

var prepared, _ = shavanity.Prepare([]byte(commit))
var calltime = gotsc.TSCOverhead()

func forgeLoop(newHash func() hash.Hash) func(b *testing.B) {
	return func(b *testing.B) {
		p, h := prepared.Clone(), newHash()
		sum := make([]byte, 0, h.Size())
		b.SetBytes(int64(len(p.Buffer)))
		b.ReportAllocs()
		b.ResetTimer()
		for i := b.N; i > 0; i-- {
			shavanity.WriteCounter(p.Buffer, p.Offset, uint64(i))
			h.Reset()
			h.Write(p.Buffer)
			sum = h.Sum(sum[:0])
		}
	}
}

func benchAlg(alg func(b *testing.B)) {
	totalHz, polls, mut, done := uint64(0), uint64(0), &sync.Mutex{}, make(chan struct{})
	if calltime > 0 {
		go func() {
			for {
				select {
				case <-done:
					return
				default:
				}
				tsc1 := gotsc.BenchStart()
				time.Sleep(time.Millisecond)
				tsc2 := gotsc.BenchEnd()

				mut.Lock()
				totalHz += tsc2 - tsc1 - calltime
				polls++
				mut.Unlock()

				time.Sleep(time.Millisecond * 9)
			}
		}()
	}
	r := testing.Benchmark(alg)
	close(done)
	mut.Lock()
	defer mut.Unlock()

	perSec := float64(r.N) / r.T.Seconds()
	Printf("Speed  %10.4f  MH/s\n", perSec/1e6)
	if calltime > 0 && polls > 0 {
		Printf("       %10.1f  cycles/hash\n", float64(totalHz*1000)/float64(polls)/perSec)
	}
	Printf("Usage  %10d  B/op\n\n", r.AllocedBytesPerOp())
}

// benchSearch runs a search that cannot succeed for d on every core and reports its rate.
func benchSearch(alg shavanity.Algorithm, d time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	never := shavanity.Target{Prefix: make([]byte, alg.Size())}
	r, _ := (&shavanity.Searcher{Algorithm: alg}).Search(ctx, prepared, never)
	Printf("%-7s %10.4f  MH/s on %d workers\n", alg,
		float64(r.Attempts)/r.Elapsed.Seconds()/1e6, runtime.NumCPU())
}

func main() {
	Printf("Running Statz on %d CPUs!\n%s/%s  avx2=%t avx512=%t ssse3=%t arm-sha1=%t arm-sha2=%t\n\n",
		runtime.NumCPU(), runtime.GOOS, runtime.GOARCH,
		cpu.X86.HasAVX2, cpu.X86.HasAVX512, cpu.X86.HasSSSE3, cpu.ARM64.HasSHA1, cpu.ARM64.HasSHA2)
	t := time.Now()

	Println("crypto/sha1")
	benchAlg(forgeLoop(shavanity.SHA1.New))

	Println("github.com/minio/sha256-simd")
	benchAlg(forgeLoop(shavanity.SHA256.New))

	Println("github.com/zeebo/blake3 (baseline)")
	benchAlg(forgeLoop(func() hash.Hash { return blake3.New() }))

	Println("github.com/zeebo/xxh3 (baseline)")
	benchAlg(forgeLoop(func() hash.Hash { return xxh3.New() }))

	Println("Parallel search")
	benchSearch(shavanity.SHA1, 2*time.Second)
	benchSearch(shavanity.SHA256, 2*time.Second)

	Println("\nFinished in " + time.Since(t).Truncate(time.Millisecond).String() + ".")
}
